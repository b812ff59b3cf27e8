package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmakk0301/aws-console-time-keeper/jsurl"
)

// graphMarker locates the metrics console's jsurl payload in the fragment.
const graphMarker = "graph="

// relativeDurationPrefix marks a relative start field, e.g. "-PT3H".
const relativeDurationPrefix = "-P"

// locateGraph finds the graph payload and decodes it. The payload runs from
// the marker to wherever the value itself ends; trailing fragment text (an
// appended parameter, a truncation) is not the codec's to interpret.
func locateGraph(a Address) (v *jsurl.Value, start, length int, err error) {
	i := strings.Index(a.Fragment, graphMarker)
	if i < 0 {
		return nil, 0, 0, ErrNoMatch
	}
	start = i + len(graphMarker)
	v, n, perr := jsurl.ParsePrefix(a.Fragment[start:])
	if perr != nil {
		return nil, 0, 0, fmt.Errorf("graph payload: %v: %w", perr, ErrMalformed)
	}
	if v.Kind() != jsurl.KindObject {
		return nil, 0, 0, fmt.Errorf("graph payload is %s: %w", v.Kind(), ErrUnsupportedValue)
	}
	return v, start, n, nil
}

func parseMetricsGraph(a Address, now time.Time) (*TimeRange, error) {
	v, _, _, err := locateGraph(a)
	if err != nil {
		return nil, err
	}

	start := v.Get("start")
	end := v.Get("end")
	if start != nil && end != nil {
		if s, serr := start.AsString(); serr == nil && strings.HasPrefix(s, relativeDurationPrefix) {
			return metricsRelative(s, end, now)
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
	}

	if p := v.Get("period"); p != nil {
		s, err := p.AsString()
		if err != nil {
			return nil, fmt.Errorf("period field is %s: %w", p.Kind(), ErrUnsupportedValue)
		}
		d, err := ParseDuration(s)
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
			DurationText: s,
		}, nil
	}

	return nil, fmt.Errorf("graph payload has neither start/end nor period: %w", ErrUnsupportedValue)
}

// metricsRelative resolves a duration-style start against now. The console
// writes end tokens like "P0D" that the duration grammar does not cover;
// such an end simply means "now".
func metricsRelative(startText string, end *jsurl.Value, now time.Time) (*TimeRange, error) {
	d, err := ParseDuration(startText)
	if err != nil {
		return nil, err
	}
	r := &TimeRange{
		Start:        now.Add(d).UnixMilli(),
		End:          now.UnixMilli(),
		Mode:         Relative,
		DurationText: startText,
	}
	if es, serr := end.AsString(); serr == nil {
		if ed, derr := ParseDuration(es); derr == nil {
			r.End = now.Add(ed).UnixMilli()
		}
	}
	return r, nil
}

// injectMetricsGraph rewrites start/end inside the graph payload as
// wall-clock text, the metrics console's absolute style, and splices the
// re-encoded payload over exactly the original span.
func injectMetricsGraph(a Address, r *TimeRange) (string, error) {
	v, start, length, err := locateGraph(a)
	if err != nil {
		return "", err
	}
	v.Set("start", jsurl.String(localCivil(r.Start)))
	v.Set("end", jsurl.String(localCivil(r.End)))

	frag := a.Fragment[:start] + jsurl.Stringify(v) + a.Fragment[start+length:]
	return a.withFragment(frag), nil
}
