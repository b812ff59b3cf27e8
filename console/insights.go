package console

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmakk0301/aws-console-time-keeper/jsurl"
)

const (
	insightsMarker      = "logs-insights"
	insightsPlainDetail = "?queryDetail="
	insightsCodedDetail = "$3FqueryDetail$3D"
)

// Format A layers three encodings on the query detail: jsurl text,
// percent-encoding, then '$' substituted for every '%'. Reversal order
// matters: substitute back, percent-decode, then value-decode.

// locateInsightsA returns the escaped value span of a Format A detail.
func locateInsightsA(a Address) (body string, start, length int, err error) {
	i := strings.Index(a.Fragment, insightsPlainDetail)
	if i < 0 {
		return "", 0, 0, ErrNoMatch
	}
	start = i + len(insightsPlainDetail)
	body = a.Fragment[start:]
	// the escaped alphabet cannot contain a raw '&'; anything after one
	// is a different parameter
	if j := strings.IndexByte(body, '&'); j >= 0 {
		body = body[:j]
	}
	return body, start, len(body), nil
}

func decodeInsightsA(body string) (*jsurl.Value, error) {
	pct := strings.ReplaceAll(body, "$", "%")
	raw, err := url.PathUnescape(pct)
	if err != nil {
		return nil, fmt.Errorf("query detail percent layer: %v: %w", err, ErrMalformed)
	}
	v, err := jsurl.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("query detail value: %v: %w", err, ErrMalformed)
	}
	return v, nil
}

func encodeInsightsA(v *jsurl.Value) string {
	return strings.ReplaceAll(percentEncode(jsurl.Stringify(v)), "%", "$")
}

func parseInsightsA(a Address, now time.Time) (*TimeRange, error) {
	body, _, _, err := locateInsightsA(a)
	if err != nil {
		return nil, err
	}
	v, err := decodeInsightsA(body)
	if err != nil {
		return nil, err
	}
	return insightsRange(v, now)
}

func injectInsightsA(a Address, r *TimeRange) (string, error) {
	body, start, length, err := locateInsightsA(a)
	if err != nil {
		return "", err
	}
	v, err := decodeInsightsA(body)
	if err != nil {
		return "", err
	}
	if v.Kind() != jsurl.KindObject {
		return "", fmt.Errorf("query detail is %s: %w", v.Kind(), ErrUnsupportedValue)
	}
	insightsWriteAbsolute(v, r)
	frag := a.Fragment[:start] + encodeInsightsA(v) + a.Fragment[start+length:]
	return a.withFragment(frag), nil
}

// Format B escape-codes the delimiters themselves ($3F, $3D); the value is
// raw jsurl text.

func locateInsightsB(a Address) (v *jsurl.Value, start, length int, err error) {
	i := strings.Index(a.Fragment, insightsCodedDetail)
	if i < 0 {
		return nil, 0, 0, ErrNoMatch
	}
	start = i + len(insightsCodedDetail)
	v, n, perr := jsurl.ParsePrefix(a.Fragment[start:])
	if perr != nil {
		return nil, 0, 0, fmt.Errorf("query detail value: %v: %w", perr, ErrMalformed)
	}
	return v, start, n, nil
}

func parseInsightsB(a Address, now time.Time) (*TimeRange, error) {
	v, _, _, err := locateInsightsB(a)
	if err != nil {
		return nil, err
	}
	return insightsRange(v, now)
}

func injectInsightsB(a Address, r *TimeRange) (string, error) {
	v, start, length, err := locateInsightsB(a)
	if err != nil {
		return "", err
	}
	if v.Kind() != jsurl.KindObject {
		return "", fmt.Errorf("query detail is %s: %w", v.Kind(), ErrUnsupportedValue)
	}
	insightsWriteAbsolute(v, r)
	frag := a.Fragment[:start] + jsurl.Stringify(v) + a.Fragment[start+length:]
	return a.withFragment(frag), nil
}

// insightsRange normalizes a decoded query detail. Both formats share the
// semantics: an explicit timeType discriminant is authoritative, the
// sign-of-start heuristic is a fallback only. Relative start/end are signed
// seconds from now, and end = 0 is a valid "now" — presence is checked by
// key, never by truthiness, or the zero case silently drops.
func insightsRange(v *jsurl.Value, now time.Time) (*TimeRange, error) {
	if v.Kind() != jsurl.KindObject {
		return nil, fmt.Errorf("query detail is %s: %w", v.Kind(), ErrUnsupportedValue)
	}
	start := v.Get("start")
	if start == nil {
		return nil, fmt.Errorf("query detail has no start: %w", ErrUnsupportedValue)
	}
	end := v.Get("end")

	relative := false
	if tt := v.Get("timeType"); tt != nil {
		s, err := tt.AsString()
		if err != nil {
			return nil, fmt.Errorf("timeType is %s: %w", tt.Kind(), ErrUnsupportedValue)
		}
		relative = strings.EqualFold(s, "RELATIVE")
	} else if n, err := start.AsNumber(); err == nil && n < 0 {
		relative = true
	}

	r := &TimeRange{}
	if u := v.Get("unit"); u != nil {
		if s, err := u.AsString(); err == nil {
			r.Unit = s
		}
	}

	if relative {
		startSec, err := start.AsNumber()
		if err != nil {
			return nil, fmt.Errorf("relative start is %s: %w", start.Kind(), ErrUnsupportedValue)
		}
		endSec := 0.0
		if end != nil {
			endSec, err = end.AsNumber()
			if err != nil {
				return nil, fmt.Errorf("relative end is %s: %w", end.Kind(), ErrUnsupportedValue)
			}
		}
		r.Mode = Relative
		r.Start = now.UnixMilli() + int64(startSec*1000)
		r.End = now.UnixMilli() + int64(endSec*1000)
		return r, nil
	}

	if end == nil {
		return nil, fmt.Errorf("absolute range has no end: %w", ErrUnsupportedValue)
	}
	startMS, err := insightsAbsoluteMillis(start)
	if err != nil {
		return nil, err
	}
	endMS, err := insightsAbsoluteMillis(end)
	if err != nil {
		return nil, err
	}
	r.Mode = Absolute
	r.Start = startMS
	r.End = endMS
	return r, nil
}

// insightsAbsoluteMillis scales a numeric timestamp by magnitude: below
// 1e12 it is epoch seconds, at or above it is already milliseconds.
func insightsAbsoluteMillis(v *jsurl.Value) (int64, error) {
	if n, err := v.AsNumber(); err == nil {
		if n < millisThreshold && n > -millisThreshold {
			return int64(n * 1000), nil
		}
		return int64(n), nil
	}
	return timeValueMillis(v)
}

// insightsWriteAbsolute overwrites the time-bearing fields with the
// scheme's native numeric unit (epoch seconds) and pins the discriminant,
// otherwise a leftover RELATIVE would misread the new values.
func insightsWriteAbsolute(v *jsurl.Value, r *TimeRange) {
	v.Set("start", jsurl.Number(float64(r.Start/1000)))
	v.Set("end", jsurl.Number(float64(r.End/1000)))
	v.Set("timeType", jsurl.String("ABSOLUTE"))
}

// percentEncode escapes every byte outside the unreserved set, so the
// result survives the console's own decode stack unchanged.
func percentEncode(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '_', c == '.':
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, "%%%02X", c)
		}
	}
	return sb.String()
}
