package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmakk0301/aws-console-time-keeper/jsurl"
)

// hashStateMarker opens a generic jsurl state object in the fragment. A
// routing segment may precede it, so it is searched anywhere in the
// fragment, not only right after the section separator.
const hashStateMarker = "?~("

// locateHashState decodes the state object starting at the marker's '~'.
// Fragments are routinely cut mid-object by the page, so an unterminated
// container is expected, not an error.
func locateHashState(a Address) (v *jsurl.Value, start, length int, err error) {
	i := strings.Index(a.Fragment, hashStateMarker)
	if i < 0 {
		return nil, 0, 0, ErrNoMatch
	}
	start = i + 1 // keep the '?' out of the value span
	v, n, perr := jsurl.ParsePrefix(a.Fragment[start:])
	if perr != nil {
		return nil, 0, 0, fmt.Errorf("hash state: %v: %w", perr, ErrMalformed)
	}
	if v.Kind() != jsurl.KindObject {
		return nil, 0, 0, fmt.Errorf("hash state is %s: %w", v.Kind(), ErrUnsupportedValue)
	}
	return v, start, n, nil
}

func parseHashState(a Address, now time.Time) (*TimeRange, error) {
	v, _, _, err := locateHashState(a)
	if err != nil {
		return nil, err
	}
	tr := v.Get("timeRange")
	if tr == nil {
		return nil, fmt.Errorf("hash state has no timeRange: %w", ErrUnsupportedValue)
	}

	switch tr.Kind() {
	case jsurl.KindNumber:
		// bare number: relative window of that many milliseconds
		n, _ := tr.AsNumber()
		d := int64(n)
		if d < 0 {
			d = -d
		}
		return &TimeRange{
			Start: now.UnixMilli() - d,
			End:   now.UnixMilli(),
			Mode:  Relative,
			Unit:  "milliseconds",
		}, nil

	case jsurl.KindArray:
		elems, _ := tr.AsArray()
		if len(elems) != 2 {
			return nil, fmt.Errorf("timeRange array has %d elements: %w", len(elems), ErrUnsupportedValue)
		}
		startMS, err := timeValueMillis(elems[0])
		if err != nil {
			return nil, err
		}
		endMS, err := timeValueMillis(elems[1])
		if err != nil {
			return nil, err
		}
		return &TimeRange{Start: startMS, End: endMS, Mode: Absolute}, nil

	case jsurl.KindObject:
		start := tr.Get("start")
		end := tr.Get("end")
		if start == nil || end == nil {
			return nil, fmt.Errorf("timeRange object missing start/end: %w", ErrUnsupportedValue)
		}
		startMS, err := timeValueMillis(start)
		if err != nil {
			return nil, err
		}
		endMS, err := timeValueMillis(end)
		if err != nil {
			return nil, err
		}
		return &TimeRange{Start: startMS, End: endMS, Mode: Absolute}, nil

	default:
		return nil, fmt.Errorf("timeRange is %s: %w", tr.Kind(), ErrUnsupportedValue)
	}
}

// injectHashState overwrites timeRange in the page's own shape: a
// start/end object keeps its form with epoch milliseconds written into the
// fields, everything else becomes the two-element absolute array.
func injectHashState(a Address, r *TimeRange) (string, error) {
	v, start, length, err := locateHashState(a)
	if err != nil {
		return "", err
	}
	existing := v.Get("timeRange")
	if existing != nil && existing.Kind() == jsurl.KindObject {
		existing.Set("start", jsurl.Number(float64(r.Start)))
		existing.Set("end", jsurl.Number(float64(r.End)))
	} else {
		v.Set("timeRange", jsurl.Array(jsurl.Number(float64(r.Start)), jsurl.Number(float64(r.End))))
	}

	frag := a.Fragment[:start] + jsurl.Stringify(v) + a.Fragment[start+length:]
	return a.withFragment(frag), nil
}
