package console

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// durationPattern is the duration grammar shared by every scheme that
// stores relative windows as text: optional sign, literal 'P' marker,
// optional 'T', then hour/minute/second groups. At least one group must be
// present ("P0D" and bare "PT" are not durations in this grammar).
var durationPattern = regexp.MustCompile(`^([+-]?)PT?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration parses a duration token like "-PT3H" or "PT1H30M".
func ParseDuration(s string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("duration %q: %w", s, ErrMalformed)
	}
	if m[2] == "" && m[3] == "" && m[4] == "" {
		return 0, fmt.Errorf("duration %q has no unit group: %w", s, ErrMalformed)
	}

	var d time.Duration
	if m[2] != "" {
		h, _ := strconv.Atoi(m[2])
		d += time.Duration(h) * time.Hour
	}
	if m[3] != "" {
		min, _ := strconv.Atoi(m[3])
		d += time.Duration(min) * time.Minute
	}
	if m[4] != "" {
		sec, _ := strconv.Atoi(m[4])
		d += time.Duration(sec) * time.Second
	}
	if m[1] == "-" {
		d = -d
	}
	return d, nil
}
