package console

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// The log event viewer escape-codes its delimiters: '?' is $3F, '=' is
// $3D, '&' is $26. Parameter values are plain signed epoch-millisecond
// integers, no value encoding involved. A negative value counts backward
// from now.
var (
	logEventsStartPattern = regexp.MustCompile(`\$(?:3F|26)start\$3D(-?\d+)`)
	logEventsEndPattern   = regexp.MustCompile(`\$(?:3F|26)end\$3D(-?\d+)`)
)

func parseLogEvents(a Address, now time.Time) (*TimeRange, error) {
	sm := logEventsStartPattern.FindStringSubmatch(a.Fragment)
	if sm == nil {
		return nil, ErrNoMatch
	}
	startVal, err := strconv.ParseInt(sm[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("start %q: %w", sm[1], ErrMalformed)
	}

	r := &TimeRange{Unit: "milliseconds"}
	if startVal < 0 {
		r.Mode = Relative
		r.Start = now.UnixMilli() + startVal
	} else {
		r.Mode = Absolute
		r.Start = startVal
	}

	// end is optional and defaults to now, with the same sign convention
	r.End = now.UnixMilli()
	if em := logEventsEndPattern.FindStringSubmatch(a.Fragment); em != nil {
		endVal, err := strconv.ParseInt(em[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("end %q: %w", em[1], ErrMalformed)
		}
		if endVal < 0 {
			r.End = now.UnixMilli() + endVal
		} else {
			r.End = endVal
		}
	}
	return r, nil
}

// injectLogEvents rewrites the start value in place, and the end value when
// present. An absent end parameter is inserted right after start: leaving
// it off would pin the copied window's end to the target page's clock.
func injectLogEvents(a Address, r *TimeRange) (string, error) {
	frag := a.Fragment
	startText := strconv.FormatInt(r.Start, 10)
	endText := strconv.FormatInt(r.End, 10)

	// replace end first so the start offsets stay valid when end is
	// absent and has to be inserted next to start
	hasEnd := false
	if eloc := logEventsEndPattern.FindStringSubmatchIndex(frag); eloc != nil {
		frag = frag[:eloc[2]] + endText + frag[eloc[3]:]
		hasEnd = true
	}

	sloc := logEventsStartPattern.FindStringSubmatchIndex(frag)
	if sloc == nil {
		return "", ErrNoMatch
	}
	if hasEnd {
		frag = frag[:sloc[2]] + startText + frag[sloc[3]:]
	} else {
		frag = frag[:sloc[2]] + startText + "$26end$3D" + endText + frag[sloc[3]:]
	}
	return a.withFragment(frag), nil
}
