package console

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmakk0301/aws-console-time-keeper/jsurl"
)

const insightsPrefix = "https://us-east-1.console.aws.amazon.com/cloudwatch/home?region=us-east-1#logsV2:logs-insights"

// encodeDetailA applies Format A's full escaping stack to a value.
func encodeDetailA(v *jsurl.Value) string {
	return encodeInsightsA(v)
}

func insightsARaw(v *jsurl.Value) string {
	return insightsPrefix + "?queryDetail=" + encodeDetailA(v)
}

func TestParseInsightsA_Relative(t *testing.T) {
	v := jsurl.Object(
		jsurl.Field("end", jsurl.Number(0)),
		jsurl.Field("start", jsurl.Number(-3600)),
		jsurl.Field("timeType", jsurl.String("RELATIVE")),
		jsurl.Field("unit", jsurl.String("seconds")),
	)
	r, tag, err := Parse(insightsARaw(v), testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tag != LogsInsightsFormatA {
		t.Fatalf("tag = %s", tag)
	}
	if r.Mode != Relative {
		t.Errorf("Mode = %s", r.Mode)
	}
	if r.Start != testNow.UnixMilli()-3600*1000 {
		t.Errorf("Start = %d", r.Start)
	}
	// end = 0 is a valid "now", not an absent field
	if r.End != testNow.UnixMilli() {
		t.Errorf("End = %d, want now", r.End)
	}
	if r.Unit != "seconds" {
		t.Errorf("Unit = %q", r.Unit)
	}
}

func TestParseInsightsA_EndAbsentDefaultsToNow(t *testing.T) {
	v := jsurl.Object(
		jsurl.Field("start", jsurl.Number(-1800)),
		jsurl.Field("timeType", jsurl.String("RELATIVE")),
	)
	r, _, err := Parse(insightsARaw(v), testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if r.End != testNow.UnixMilli() {
		t.Errorf("End = %d, want now", r.End)
	}
}

func TestParseInsightsA_AbsoluteSecondsScaled(t *testing.T) {
	// numeric values below 1e12 are epoch seconds
	v := jsurl.Object(
		jsurl.Field("start", jsurl.Number(1700000000)),
		jsurl.Field("end", jsurl.Number(1700003600)),
		jsurl.Field("timeType", jsurl.String("ABSOLUTE")),
	)
	r, _, err := Parse(insightsARaw(v), testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if r.Start != 1700000000000 || r.End != 1700003600000 {
		t.Errorf("range = [%d, %d]", r.Start, r.End)
	}
}

func TestParseInsightsA_AbsoluteMillisPassThrough(t *testing.T) {
	v := jsurl.Object(
		jsurl.Field("start", jsurl.Number(1700000000000)),
		jsurl.Field("end", jsurl.Number(1700003600000)),
	)
	r, _, err := Parse(insightsARaw(v), testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if r.Mode != Absolute {
		t.Errorf("Mode = %s", r.Mode)
	}
	if r.Start != 1700000000000 || r.End != 1700003600000 {
		t.Errorf("range = [%d, %d]", r.Start, r.End)
	}
}

func TestParseInsights_DiscriminantBeatsHeuristic(t *testing.T) {
	// a negative start with an explicit ABSOLUTE discriminant stays
	// absolute; the sign heuristic is a fallback only
	v := jsurl.Object(
		jsurl.Field("start", jsurl.Number(-10)),
		jsurl.Field("end", jsurl.Number(1700003600)),
		jsurl.Field("timeType", jsurl.String("ABSOLUTE")),
	)
	r, _, err := Parse(insightsARaw(v), testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if r.Mode != Absolute {
		t.Errorf("Mode = %s, want absolute", r.Mode)
	}
}

func TestParseInsightsB_Relative(t *testing.T) {
	raw := insightsPrefix + "$3FqueryDetail$3D~(end~0~start~-3600~timeType~'RELATIVE~unit~'seconds)"
	r, tag, err := Parse(raw, testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tag != LogsInsightsFormatB {
		t.Fatalf("tag = %s", tag)
	}
	if r.Start != testNow.UnixMilli()-3600*1000 || r.End != testNow.UnixMilli() {
		t.Errorf("range = [%d, %d]", r.Start, r.End)
	}
}

func TestParseInsights_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"missing-start", insightsPrefix + "$3FqueryDetail$3D~(end~0)", ErrUnsupportedValue},
		{"absolute-no-end", insightsPrefix + "$3FqueryDetail$3D~(start~1700000000~timeType~'ABSOLUTE)", ErrUnsupportedValue},
		{"detail-not-object", insightsPrefix + "$3FqueryDetail$3D~42", ErrUnsupportedValue},
		{"corrupt-value", insightsPrefix + "$3FqueryDetail$3D~(start~bogus)", ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.raw, testNow)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInjectInsightsB_SubSecondTruncation(t *testing.T) {
	// the scheme reads and writes epoch seconds; injecting a range with
	// sub-second precision truncates to whole seconds on read-back
	raw := insightsPrefix + "$3FqueryDetail$3D~(end~0~start~-3600~timeType~'RELATIVE)"
	out, _, err := Inject(raw, &TimeRange{Start: 1700000000250, End: 1700003600750})
	if err != nil {
		t.Fatalf("Inject failed: %v", err)
	}
	r, _, err := Parse(out, testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if r.Start != 1700000000000 || r.End != 1700003600000 {
		t.Errorf("range = [%d, %d], want whole seconds", r.Start, r.End)
	}
}

func TestInjectInsightsA_PreservesUnrelated(t *testing.T) {
	v := jsurl.Object(
		jsurl.Field("queryId", jsurl.String("abc-123")),
		jsurl.Field("end", jsurl.Number(0)),
		jsurl.Field("start", jsurl.Number(-3600)),
		jsurl.Field("timeType", jsurl.String("RELATIVE")),
		jsurl.Field("editorString", jsurl.String("fields @timestamp")),
	)
	raw := insightsARaw(v) + "&tab=logs"
	out, _, err := Inject(raw, &TimeRange{Start: 1700000000000, End: 1700003600000})
	if err != nil {
		t.Fatalf("Inject failed: %v", err)
	}
	assertPreserved(t, out, "&tab=logs", "?region=us-east-1#logsV2:logs-insights?queryDetail=")

	r, _, err := Parse(out, testNow)
	if err != nil {
		t.Fatalf("Parse after inject failed: %v", err)
	}
	if r.Start != 1700000000000 || r.End != 1700003600000 {
		t.Errorf("range = [%d, %d]", r.Start, r.End)
	}

	// unrelated members survive the decode/re-encode cycle
	got, err := decodeInsightsA(strings.TrimSuffix(strings.SplitN(SplitAddress(out).Fragment, "?queryDetail=", 2)[1], "&tab=logs"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if s, _ := got.Get("queryId").AsString(); s != "abc-123" {
		t.Errorf("queryId = %q", s)
	}
	if s, _ := got.Get("editorString").AsString(); s != "fields @timestamp" {
		t.Errorf("editorString = %q", s)
	}
}

func TestInjectInsightsB_PreservesUnrelated(t *testing.T) {
	raw := insightsPrefix + "$3FqueryDetail$3D~(queryId~'abc~end~0~start~-3600~timeType~'RELATIVE)$26tab$3Dlogs"
	out, _, err := Inject(raw, &TimeRange{Start: 1700000000000, End: 1700003600000})
	if err != nil {
		t.Fatalf("Inject failed: %v", err)
	}
	assertPreserved(t, out, "queryId~'abc", "$26tab$3Dlogs")
}
