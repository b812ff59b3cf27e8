package console

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const metricsPrefix = "https://us-east-1.console.aws.amazon.com/cloudwatch/home?region=us-east-1#metricsV2:graph="

func TestParseMetricsGraph_Relative(t *testing.T) {
	raw := metricsPrefix + "~(view~'timeSeries~start~'-PT3H~end~'P0D)"
	r, tag, err := Parse(raw, testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tag != MetricsGraph {
		t.Fatalf("tag = %s", tag)
	}
	if r.Mode != Relative {
		t.Errorf("Mode = %s, want relative", r.Mode)
	}
	if r.Start != testNow.Add(-3*time.Hour).UnixMilli() {
		t.Errorf("Start = %d", r.Start)
	}
	// "P0D" is not in the duration grammar; the end falls back to now
	if r.End != testNow.UnixMilli() {
		t.Errorf("End = %d, want now", r.End)
	}
	if r.DurationText != "-PT3H" {
		t.Errorf("DurationText = %q", r.DurationText)
	}
}

func TestParseMetricsGraph_AbsoluteISO(t *testing.T) {
	raw := metricsPrefix + "~(start~'2023-11-14T10:00:00.000~end~'2023-11-14T11:30:00.000~view~'timeSeries)"
	r, _, err := Parse(raw, testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if r.Mode != Absolute {
		t.Errorf("Mode = %s, want absolute", r.Mode)
	}
	// zoneless timestamps are wall-clock text in the local zone
	wantStart := time.Date(2023, 11, 14, 10, 0, 0, 0, time.Local).UnixMilli()
	wantEnd := time.Date(2023, 11, 14, 11, 30, 0, 0, time.Local).UnixMilli()
	if r.Start != wantStart || r.End != wantEnd {
		t.Errorf("range = [%d, %d], want [%d, %d]", r.Start, r.End, wantStart, wantEnd)
	}
}

func TestParseMetricsGraph_AbsoluteEpoch(t *testing.T) {
	raw := metricsPrefix + "~(start~1700000000000~end~1700003600000)"
	r, _, err := Parse(raw, testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if r.Start != 1700000000000 || r.End != 1700003600000 {
		t.Errorf("range = [%d, %d]", r.Start, r.End)
	}
}

func TestParseMetricsGraph_PeriodFallback(t *testing.T) {
	raw := metricsPrefix + "~(view~'timeSeries~period~'PT12H)"
	r, _, err := Parse(raw, testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if r.Mode != Relative {
		t.Errorf("Mode = %s, want relative", r.Mode)
	}
	if r.Start != testNow.Add(-12*time.Hour).UnixMilli() || r.End != testNow.UnixMilli() {
		t.Errorf("range = [%d, %d]", r.Start, r.End)
	}
}

func TestParseMetricsGraph_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"no-time-fields", metricsPrefix + "~(view~'timeSeries)", ErrUnsupportedValue},
		{"payload-not-object", metricsPrefix + "~(~1~2)", ErrUnsupportedValue},
		{"corrupt-payload", metricsPrefix + "~(start~zz)", ErrMalformed},
		{"bad-duration", metricsPrefix + "~(start~'-PXQ~end~'P0D)", ErrMalformed},
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

func TestParseMetricsGraph_TruncatedPayload(t *testing.T) {
	// the fragment was cut after the start field; decoding still yields it
	raw := metricsPrefix + "~(start~1700000000000~end~17000036"
	r, _, err := Parse(raw, testNow)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if r.Start != 1700000000000 {
		t.Errorf("Start = %d", r.Start)
	}
}

func TestInjectMetricsGraph_PreservesUnrelated(t *testing.T) {
	raw := metricsPrefix + "~(view~'timeSeries~stacked~false~start~'-PT3H~end~'P0D~region~'us-east-1)&extra=keep"
	out, _, err := Inject(raw, &TimeRange{Start: 1700000000000, End: 1700003600000})
	if err != nil {
		t.Fatalf("Inject failed: %v", err)
	}
	assertPreserved(t, out,
		"?region=us-east-1#metricsV2:graph=",
		"view~'timeSeries",
		"stacked~false",
		"region~'us-east-1",
		"&extra=keep",
	)
	if strings.Contains(out, "-PT3H") {
		t.Errorf("stale relative start left behind: %q", out)
	}
}

func TestInjectMetricsGraph_NoMatch(t *testing.T) {
	// metrics-classified address whose payload was edited out from under us
	a := SplitAddress("https://us-east-1.console.aws.amazon.com/cloudwatch/home#metricsV2:home")
	_, err := injectMetricsGraph(a, &TimeRange{Start: 1, End: 2})
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
}
