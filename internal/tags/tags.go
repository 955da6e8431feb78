// Package tags defines the bit layout of the 32-bit tags field carried by
// every chat message.
//
//	bit 0     logged_in  set by the server after a successful auth check
//	bit 1     generated  message derived from another message
//	bit 2     bot        message authored by an automated agent
//	bit 3     no_notif   suppress notification rules
//	bits 4-7  show_value display hint (see ShowValue)
//
// All remaining bits are reserved and always zero.
package tags

// Tags is the raw bitfield as stored with a message.
type Tags int32

const (
	LoggedIn  Tags = 1 << 0
	Generated Tags = 1 << 1
	Bot       Tags = 1 << 2
	NoNotif   Tags = 1 << 3

	showShift      = 4
	showBits  Tags = 0xF << showShift

	// Mask covers every defined bit.
	Mask = LoggedIn | Generated | Bot | NoNotif | showBits
)

// ShowValue is the 4-bit client display hint.
// 0 means no change, 1-4 increasingly hidden, 9-12 increasingly important.
// 5-8 and 13-15 are reserved and behave like 0.
type ShowValue uint8

// Level maps the hint to a signed level: -1..-4 for hidden values,
// 1..4 for important ones and 0 for "no change" and reserved values.
func (v ShowValue) Level() int {
	switch {
	case v >= 1 && v <= 4:
		return -int(v)
	case v >= 9 && v <= 12:
		return int(v) - 8
	default:
		return 0
	}
}

// Reserved reports whether v falls into a reserved range.
func (v ShowValue) Reserved() bool {
	return (v >= 5 && v <= 8) || v >= 13
}

// FromClient sanitizes a caller-suggested tag value: bits outside Mask are
// dropped and logged_in is always cleared, since only the server may set it.
func FromClient(raw int32) Tags {
	return Tags(raw) & Mask &^ LoggedIn
}

// Has reports whether every bit of flag is set.
func (t Tags) Has(flag Tags) bool {
	return t&flag == flag
}

// With returns t with flag set.
func (t Tags) With(flag Tags) Tags {
	return t | flag
}

// Without returns t with flag cleared.
func (t Tags) Without(flag Tags) Tags {
	return t &^ flag
}

// ShowValue extracts bits 4-7.
func (t Tags) ShowValue() ShowValue {
	return ShowValue((t & showBits) >> showShift)
}

// WithShowValue replaces bits 4-7 with the low four bits of v.
func (t Tags) WithShowValue(v ShowValue) Tags {
	return (t &^ showBits) | (Tags(v&0xF) << showShift)
}

// Flags is the decoded form of Tags.
type Flags struct {
	LoggedIn  bool      `json:"logged_in"`
	Generated bool      `json:"generated"`
	Bot       bool      `json:"bot"`
	NoNotif   bool      `json:"no_notif"`
	ShowValue ShowValue `json:"show_value"`
}

// Decode splits t into its fields.
func Decode(t Tags) Flags {
	return Flags{
		LoggedIn:  t.Has(LoggedIn),
		Generated: t.Has(Generated),
		Bot:       t.Has(Bot),
		NoNotif:   t.Has(NoNotif),
		ShowValue: t.ShowValue(),
	}
}

// Encode packs f back into a bitfield.
func (f Flags) Encode() Tags {
	var t Tags
	if f.LoggedIn {
		t = t.With(LoggedIn)
	}
	if f.Generated {
		t = t.With(Generated)
	}
	if f.Bot {
		t = t.With(Bot)
	}
	if f.NoNotif {
		t = t.With(NoNotif)
	}
	return t.WithShowValue(f.ShowValue)
}
