package console

import (
	"fmt"
	"time"
)

type parseFunc func(a Address, now time.Time) (*TimeRange, error)
type injectFunc func(a Address, r *TimeRange) (string, error)

// Parser and injector pairs are registered per scheme tag. A newly observed
// address shape is a new entry here plus a classifier rule, never an edit to
// existing branches.
var parsers = map[Scheme]parseFunc{
	MetricsGraph:        parseMetricsGraph,
	LogsInsightsFormatA: parseInsightsA,
	LogsInsightsFormatB: parseInsightsB,
	LogEvents:           parseLogEvents,
	GenericHashState:    parseHashState,
	PlainQueryDuration:  parseQueryDuration,
}

var injectors = map[Scheme]injectFunc{
	MetricsGraph:        injectMetricsGraph,
	LogsInsightsFormatA: injectInsightsA,
	LogsInsightsFormatB: injectInsightsB,
	LogEvents:           injectLogEvents,
	GenericHashState:    injectHashState,
	PlainQueryDuration:  injectQueryDuration,
}

// Parse classifies raw and decodes its time range. Relative windows are
// resolved against now, which also stamps CapturedAt.
func Parse(raw string, now time.Time) (*TimeRange, Scheme, error) {
	a := SplitAddress(raw)
	tag := Classify(a)
	p, ok := parsers[tag]
	if !ok {
		return nil, tag, fmt.Errorf("scheme %s: %w", tag, ErrNoMatch)
	}
	r, err := p(a, now)
	if err != nil {
		return nil, tag, fmt.Errorf("scheme %s: %w", tag, err)
	}
	r.Source = tag.String()
	r.CapturedAt = now.UnixMilli()
	return r, tag, nil
}

// Inject rewrites the time-bearing substring of raw with r and returns the
// new address. Only that substring changes; everything else is preserved
// byte-for-byte. Injectors always write the scheme's Absolute form, so
// "now" never sneaks into the target page implicitly. A missing substring
// is ErrNoMatch: appending a guessed parameter could silently fail to
// affect page behavior.
func Inject(raw string, r *TimeRange) (string, Scheme, error) {
	a := SplitAddress(raw)
	tag := Classify(a)
	inj, ok := injectors[tag]
	if !ok {
		return "", tag, fmt.Errorf("scheme %s: %w", tag, ErrNoMatch)
	}
	out, err := inj(a, r)
	if err != nil {
		return "", tag, fmt.Errorf("scheme %s: %w", tag, err)
	}
	return out, tag, nil
}
