package console

import (
	"errors"
	"fmt"
	"time"
)

// Failure taxonomy. Every parse/inject failure wraps exactly one of these,
// so callers can switch on errors.Is or on ReasonCode. Nothing in this
// package panics past its boundary.
var (
	// ErrNoMatch: the expected scheme substring is absent. The address
	// does not match its own classifier's promise, or was edited
	// out-of-band since classification.
	ErrNoMatch = errors.New("no-match")

	// ErrMalformed: the substring was found but its contents fail the
	// scheme's grammar, including corrupt value text.
	ErrMalformed = errors.New("malformed")

	// ErrUnsupportedValue: the value decoded cleanly but its shape does
	// not map to a known time representation.
	ErrUnsupportedValue = errors.New("unsupported-value")
)

// ReasonCode returns the stable failure code for an error from this
// package, or "" for nil/foreign errors.
func ReasonCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoMatch):
		return "no-match"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrUnsupportedValue):
		return "unsupported-value"
	default:
		return ""
	}
}

// Mode says how the page encoded the range. Injectors always re-encode
// Absolute; the mode is advisory, kept so a caller can show "last 3 hours"
// instead of two instants.
type Mode uint8

const (
	Absolute Mode = iota
	Relative
)

func (m Mode) String() string {
	if m == Relative {
		return "relative"
	}
	return "absolute"
}

// TimeRange is the canonical in-memory time window, independent of the
// scheme it was read from. Start <= End is not enforced here: some schemes
// hold reversed or negative offsets mid-computation, and ordering is the
// caller's concern once a range is final.
type TimeRange struct {
	Start int64 // epoch milliseconds
	End   int64 // epoch milliseconds

	// Source is the scheme tag or a human label for display.
	Source string

	// CapturedAt is when the range was read, epoch milliseconds. Zero
	// when unknown.
	CapturedAt int64

	// Mode plus the echo fields below let an injector or display layer
	// stay faithful to what the page showed. Advisory only.
	Mode         Mode
	DurationText string // original duration token, e.g. "-PT3H"
	Unit         string // original numeric unit, e.g. "seconds"
}

// StartTime returns Start as a time.Time.
func (r *TimeRange) StartTime() time.Time {
	return time.UnixMilli(r.Start)
}

// EndTime returns End as a time.Time.
func (r *TimeRange) EndTime() time.Time {
	return time.UnixMilli(r.End)
}

func (r *TimeRange) String() string {
	return fmt.Sprintf("[%s .. %s] (%s)", r.StartTime().Format(time.RFC3339), r.EndTime().Format(time.RFC3339), r.Mode)
}
