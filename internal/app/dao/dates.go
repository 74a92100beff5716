package dao

import (
	"strings"
	"time"
)

// isoLayout matches what browsers produce with Date.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

// FormatISO renders t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// FormatISOPtr is FormatISO for optional dates.
func FormatISOPtr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := FormatISO(*t)
	return &s
}

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISO accepts RFC 3339 timestamps and bare dates. The result is UTC,
// truncated to milliseconds, which is the precision the store keeps.
func ParseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Millisecond), true
		}
	}
	return time.Time{}, false
}

func parseISOPtr(s *string) (*time.Time, bool) {
	if s == nil {
		return nil, true
	}
	t, ok := ParseISO(*s)
	if !ok {
		return nil, false
	}
	return &t, true
}
