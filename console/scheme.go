package console

// Scheme identifies one of the console's address-encoding conventions.
type Scheme uint8

const (
	// MetricsGraph is the metrics console: a jsurl graph= payload in the
	// fragment with start/end or period fields.
	MetricsGraph Scheme = iota

	// LogsInsightsFormatA is the Logs Insights query detail with literal
	// '?'/'=' delimiters and a $-substituted, percent-encoded jsurl value.
	LogsInsightsFormatA

	// LogsInsightsFormatB is the Logs Insights query detail with $3F/$3D
	// escaped delimiters and a raw jsurl value.
	LogsInsightsFormatB

	// LogEvents is the log group event viewer: $3F/$3D/$26 escaped
	// delimiters and plain signed-integer millisecond parameters.
	LogEvents

	// GenericHashState is any page that stores view state as a jsurl
	// object behind a '?~(' marker in the fragment.
	GenericHashState

	// PlainQueryDuration is a single duration-or-endpoints parameter in
	// the query string or fragment.
	PlainQueryDuration

	// Unsupported is a console page with no time range in its address.
	Unsupported

	// NotApplicable is an address that is not a console page at all.
	NotApplicable
)

// String returns the scheme tag name.
func (s Scheme) String() string {
	switch s {
	case MetricsGraph:
		return "metrics-graph"
	case LogsInsightsFormatA:
		return "logs-insights-a"
	case LogsInsightsFormatB:
		return "logs-insights-b"
	case LogEvents:
		return "log-events"
	case GenericHashState:
		return "hash-state"
	case PlainQueryDuration:
		return "query-duration"
	case Unsupported:
		return "unsupported"
	case NotApplicable:
		return "not-applicable"
	default:
		return "unknown"
	}
}

// Supported reports whether a parser/injector pair exists for the scheme.
func (s Scheme) Supported() bool {
	return s < Unsupported
}
