// Package selection turns a client's selection window into a canonical
// Request that message stores execute.
//
// Every mode returns messages in ascending (timestamp, id) order. The id
// tie-break keeps cursors deterministic when several messages share a
// timestamp.
package selection

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/iudanet/chatbix/internal/models"
)

const (
	// DefaultLast is the number of messages returned when no cursor is given
	DefaultLast = 150
	// MaxLast bounds client-supplied Last(n)
	MaxLast = 1000
)

// Mode identifies one of the four selection modes.
type Mode int

const (
	// ModeLast selects the n most recent messages.
	ModeLast Mode = iota
	// ModeAllFromTimestamp selects messages with timestamp > From.
	ModeAllFromTimestamp
	// ModeFromToTimestamp selects messages with From < timestamp < To.
	ModeFromToTimestamp
	// ModeAllFromID selects messages with id > ID.
	ModeAllFromID
)

func (m Mode) String() string {
	switch m {
	case ModeLast:
		return "last"
	case ModeAllFromTimestamp:
		return "all_from_timestamp"
	case ModeFromToTimestamp:
		return "from_to_timestamp"
	case ModeAllFromID:
		return "all_from_id"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Interval is a selection window. Only the fields relevant to Mode are set.
type Interval struct {
	From time.Time
	To   time.Time
	Mode Mode
	N    int
	ID   int64
}

// Last selects the n most recent messages.
func Last(n int) Interval { return Interval{Mode: ModeLast, N: n} }

// AllFromTimestamp selects every message strictly newer than t.
func AllFromTimestamp(t time.Time) Interval {
	return Interval{Mode: ModeAllFromTimestamp, From: t.UTC()}
}

// FromToTimestamp selects every message strictly between t0 and t1.
func FromToTimestamp(t0, t1 time.Time) Interval {
	return Interval{Mode: ModeFromToTimestamp, From: t0.UTC(), To: t1.UTC()}
}

// AllFromID selects every message with an id greater than id.
func AllFromID(id int64) Interval { return Interval{Mode: ModeAllFromID, ID: id} }

// DefaultInterval is Last(DefaultLast).
func DefaultInterval() Interval { return Last(DefaultLast) }

// Contains reports whether m falls inside the interval bounds. ModeLast has
// no bounds, its limit is applied after ordering.
func (i Interval) Contains(m *models.Message) bool {
	switch i.Mode {
	case ModeAllFromTimestamp:
		return m.Timestamp.After(i.From)
	case ModeFromToTimestamp:
		return m.Timestamp.After(i.From) && m.Timestamp.Before(i.To)
	case ModeAllFromID:
		return m.ID > i.ID
	default:
		return true
	}
}

// Request is the canonical selection handed to a message store.
type Request struct {
	Channels              []string // sorted, deduplicated
	Interval              Interval
	IncludeDefaultChannel bool
}

// NewRequest builds a Request, canonicalizing the channel set.
func NewRequest(interval Interval, channels []string, includeDefault bool) Request {
	set := make([]string, 0, len(channels))
	for _, c := range channels {
		if c != "" {
			set = append(set, c)
		}
	}
	sort.Strings(set)

	return Request{
		Interval:              interval,
		Channels:              slices.Compact(set),
		IncludeDefaultChannel: includeDefault,
	}
}

// Empty reports whether no message can be selected: either the default
// channel is excluded and no named channel was requested, or the interval
// is Last(n) with n <= 0.
func (r Request) Empty() bool {
	if r.Interval.Mode == ModeLast && r.Interval.N <= 0 {
		return true
	}
	return !r.IncludeDefaultChannel && len(r.Channels) == 0
}

// Visible reports whether a message posted to channel passes the channel
// filter. A nil channel is the default channel.
func (r Request) Visible(channel *string) bool {
	if channel == nil {
		return r.IncludeDefaultChannel
	}
	_, found := slices.BinarySearch(r.Channels, *channel)
	return found
}

// Matches reports whether m passes both the channel filter and the interval
// bounds.
func (r Request) Matches(m *models.Message) bool {
	return r.Visible(m.Channel) && r.Interval.Contains(m)
}

// Less is the canonical message order: timestamp, then id, ascending.
func Less(a, b *models.Message) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return a.ID < b.ID
}

// Apply evaluates r over an in-memory slice. It is the reference semantics
// every store adapter must reproduce. msgs is not modified.
func Apply(r Request, msgs []*models.Message) []*models.Message {
	out := make([]*models.Message, 0)
	if r.Empty() {
		return out
	}

	for _, m := range msgs {
		if r.Matches(m) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })

	if r.Interval.Mode == ModeLast && len(out) > r.Interval.N {
		out = out[len(out)-r.Interval.N:]
	}
	return out
}
