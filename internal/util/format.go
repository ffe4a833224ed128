package util

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration in compact form: whole seconds under a
// minute, fractional minutes under an hour, fractional hours beyond that.
// Examples: 59s, 2.1m, 2.1h.
func FormatDuration(d time.Duration) string {
	s := d.Seconds()
	switch {
	case s < 60:
		return fmt.Sprintf("%.0fs", s)
	case s < 3600:
		return fmt.Sprintf("%.1fm", s/60)
	default:
		return fmt.Sprintf("%.1fh", s/3600)
	}
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatDateISO formats a time to ISO date format (2006-01-02).
func FormatDateISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseTime parses an ISO-8601 / RFC3339 timestamp, with or without
// fractional seconds. Reports false on empty or malformed input.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Truncate shortens s to at most n characters.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
