package selection

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrMalformed is returned for unparseable cursors, timestamps or ids.
var ErrMalformed = errors.New("malformed selection")

// timestampLayouts are tried in order before falling back to Unix seconds.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseTimestamp accepts "2017-01-19T22:56:16" (UTC), RFC 3339 or integer
// Unix seconds such as "1485357232".
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", ErrMalformed, s)
	}
	return time.Unix(secs, 0).UTC(), nil
}

// QueryOptions controls which parameters ParseQuery honours.
type QueryOptions struct {
	// AllowRange enables timestamp_end (FromToTimestamp). Heartbeats only
	// poll forward and leave it off.
	AllowRange bool
}

// ParseQuery builds a Request from URL query parameters:
//
//	channels=a,b  channel=a&channel=b  merged into one set
//	no_default_channel                 excludes the default channel
//	message_id=N                       AllFromID(N), wins over timestamps
//	timestamp=T                        AllFromTimestamp(T)
//	timestamp=T&timestamp_end=U        FromToTimestamp(T, U) if AllowRange
//	last=N                             Last(N), 1..MaxLast
//
// With none of the cursor parameters the interval is DefaultInterval.
func ParseQuery(q url.Values, opts QueryOptions) (Request, error) {
	var channels []string
	if v := q.Get("channels"); v != "" {
		channels = append(channels, strings.Split(v, ",")...)
	}
	channels = append(channels, q["channel"]...)

	includeDefault := !q.Has("no_default_channel")

	interval, err := parseInterval(q, opts)
	if err != nil {
		return Request{}, err
	}

	return NewRequest(interval, channels, includeDefault), nil
}

func parseInterval(q url.Values, opts QueryOptions) (Interval, error) {
	if q.Has("message_id") {
		id, err := strconv.ParseInt(q.Get("message_id"), 10, 64)
		if err != nil {
			return Interval{}, fmt.Errorf("%w: invalid message_id %q", ErrMalformed, q.Get("message_id"))
		}
		return AllFromID(id), nil
	}

	if q.Has("timestamp") {
		from, err := ParseTimestamp(q.Get("timestamp"))
		if err != nil {
			return Interval{}, err
		}
		if opts.AllowRange && q.Has("timestamp_end") {
			to, err := ParseTimestamp(q.Get("timestamp_end"))
			if err != nil {
				return Interval{}, err
			}
			return FromToTimestamp(from, to), nil
		}
		return AllFromTimestamp(from), nil
	}

	if q.Has("last") {
		n, err := strconv.Atoi(q.Get("last"))
		if err != nil || n < 1 || n > MaxLast {
			return Interval{}, fmt.Errorf("%w: last must be between 1 and %d", ErrMalformed, MaxLast)
		}
		return Last(n), nil
	}

	return DefaultInterval(), nil
}
