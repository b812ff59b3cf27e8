package console

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jmakk0301/aws-console-time-keeper/jsurl"
)

// millisThreshold separates epoch seconds from epoch milliseconds: numeric
// timestamps at or above 1e12 are already milliseconds.
const millisThreshold = 1e12

// isoFormats are probed in order when a scheme stores a timestamp as text.
// Zoneless variants are wall-clock text: the console renders and expects
// local civil time, so they parse in the local zone.
var isoFormats = []struct {
	layout string
	local  bool
}{
	{"2006-01-02T15:04:05.000Z07:00", false},
	{time.RFC3339Nano, false},
	{time.RFC3339, false},
	{"2006-01-02T15:04:05.000", true},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02", true},
}

func parseISO(s string) (time.Time, error) {
	for _, f := range isoFormats {
		if f.local {
			if t, err := time.ParseInLocation(f.layout, s, time.Local); err == nil {
				return t, nil
			}
		} else if t, err := time.Parse(f.layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q: %w", s, ErrMalformed)
}

// localCivil renders an instant as the wall-clock text display-oriented
// parameters expect: local time, millisecond precision, no zone suffix.
func localCivil(ms int64) string {
	return time.UnixMilli(ms).In(time.Local).Format("2006-01-02T15:04:05.000")
}

// timeValueMillis converts a decoded value holding either an ISO timestamp
// string or a raw epoch-millisecond number into epoch milliseconds.
func timeValueMillis(v *jsurl.Value) (int64, error) {
	if n, err := v.AsNumber(); err == nil {
		return int64(n), nil
	}
	s, err := v.AsString()
	if err != nil {
		return 0, fmt.Errorf("time field is %s: %w", v.Kind(), ErrUnsupportedValue)
	}
	t, err := parseISO(s)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// parseEndpoint converts a textual endpoint, either an epoch number
// (seconds or milliseconds by magnitude) or an ISO timestamp, into epoch
// milliseconds.
func parseEndpoint(s string) (int64, error) {
	if isEpochLiteral(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("endpoint %q: %w", s, ErrMalformed)
		}
		if n < millisThreshold {
			return n * 1000, nil
		}
		return n, nil
	}
	t, err := parseISO(s)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

func isEpochLiteral(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if i == 0 && (c == '-' || c == '+') {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
