package console

import "strings"

// Scheme substrings nest and overlap, so matching is ordered and
// first-match-wins. The precedence lives in this slice, not in control
// flow: adding a newly observed shape means inserting a rule, not editing
// branches.
var classifyRules = []struct {
	tag   Scheme
	match func(Address) bool
}{
	{MetricsGraph, func(a Address) bool {
		return strings.Contains(a.Fragment, graphMarker+"~(")
	}},

	// Insights before LogEvents: an insights fragment can carry the same
	// escaped start parameter.
	{LogsInsightsFormatA, func(a Address) bool {
		return strings.Contains(a.Fragment, insightsMarker) &&
			strings.Contains(a.Fragment, insightsPlainDetail)
	}},
	{LogsInsightsFormatB, func(a Address) bool {
		return strings.Contains(a.Fragment, insightsMarker) &&
			strings.Contains(a.Fragment, insightsCodedDetail)
	}},

	{LogEvents, func(a Address) bool {
		if strings.Contains(a.Fragment, insightsMarker) {
			return false
		}
		return strings.Contains(a.Fragment, "$3Fstart$3D") ||
			strings.Contains(a.Fragment, "$26start$3D")
	}},

	// Path-based product section with its own duration parameter.
	{PlainQueryDuration, func(a Address) bool {
		return strings.Contains(a.Path, "/synthetics") ||
			strings.HasPrefix(a.Fragment, "synthetics")
	}},

	// Generic hash state fires last among the supported schemes: the
	// marker may appear mid-fragment after a routing segment, and more
	// specific schemes above also contain it.
	{GenericHashState, func(a Address) bool {
		return strings.Contains(a.Fragment, hashStateMarker)
	}},

	// Console pages whose address carries no time range.
	{Unsupported, func(a Address) bool {
		return isConsoleHost(a.Host)
	}},
}

// Classify returns exactly one scheme tag for an address. It cannot fail:
// addresses that match nothing are NotApplicable, which callers treat as
// "manual handling required", not an error.
func Classify(a Address) Scheme {
	for _, r := range classifyRules {
		if r.match(a) {
			return r.tag
		}
	}
	return NotApplicable
}

func isConsoleHost(host string) bool {
	host = strings.ToLower(host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return host == "console.aws.amazon.com" ||
		strings.HasSuffix(host, ".console.aws.amazon.com")
}
