package console

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// PlainQueryDuration pages carry a single duration parameter, in the query
// string or the fragment. Relative form is a duration token ("PT1H");
// absolute form is two ISO-or-epoch endpoints joined by the separator.
const (
	durationParam     = "duration"
	endpointSeparator = "~"
)

var (
	durationInQuery    = regexp.MustCompile(`(?:^|&)` + durationParam + `=([^&]*)`)
	durationInFragment = regexp.MustCompile(`[?&]` + durationParam + `=([^&]*)`)
)

// locateDuration returns the parameter's value span, preferring the query
// string over the fragment.
func locateDuration(a Address) (value string, inQuery bool, start, length int, err error) {
	if m := durationInQuery.FindStringSubmatchIndex(a.RawQuery); m != nil {
		return a.RawQuery[m[2]:m[3]], true, m[2], m[3] - m[2], nil
	}
	if m := durationInFragment.FindStringSubmatchIndex(a.Fragment); m != nil {
		return a.Fragment[m[2]:m[3]], false, m[2], m[3] - m[2], nil
	}
	return "", false, 0, 0, ErrNoMatch
}

func parseQueryDuration(a Address, now time.Time) (*TimeRange, error) {
	value, _, _, _, err := locateDuration(a)
	if err != nil {
		return nil, err
	}

	if strings.Contains(value, endpointSeparator) {
		parts := strings.SplitN(value, endpointSeparator, 3)
		if len(parts) != 2 {
			return nil, fmt.Errorf("duration %q: %w", value, ErrMalformed)
		}
		startMS, err := parseEndpoint(parts[0])
		if err != nil {
			return nil, err
		}
		endMS, err := parseEndpoint(parts[1])
		if err != nil {
			return nil, err
		}
		return &TimeRange{Start: startMS, End: endMS, Mode: Absolute}, nil
	}

	d, err := ParseDuration(value)
	if err != nil {
		return nil, err
	}
	if d > 0 {
		d = -d
	}
	return &TimeRange{
		Start:        now.Add(d).UnixMilli(),
		End:          now.UnixMilli(),
		Mode:         Relative,
		DurationText: value,
	}, nil
}

// injectQueryDuration writes the absolute endpoint-pair form. The parameter
// is display-oriented, so endpoints render as wall-clock text.
func injectQueryDuration(a Address, r *TimeRange) (string, error) {
	_, inQuery, start, length, err := locateDuration(a)
	if err != nil {
		return "", err
	}
	value := localCivil(r.Start) + endpointSeparator + localCivil(r.End)

	if inQuery {
		q := a.RawQuery[:start] + value + a.RawQuery[start+length:]
		return a.withRawQuery(q), nil
	}
	frag := a.Fragment[:start] + value + a.Fragment[start+length:]
	return a.withFragment(frag), nil
}
