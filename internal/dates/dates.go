// Package dates provides canonical date/datetime layouts and parsing helpers.
//
// These are shared by:
// - the holiday dataset loader (YYYY-MM-DD dates)
// - the resolver (anchor formatting, day offsets)
// - the CLI (--base argument, result printing)
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DateLayout is the ISO calendar date layout.
	DateLayout = "2006-01-02"

	// DatetimeLayout is the zone-less datetime layout used for printed results.
	DatetimeLayout = "2006-01-02T15:04:05"
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// IsValidDate checks if a string is a valid YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return time.Parse(DateLayout, s)
}

// ParseDatetime parses a datetime in one of the accepted formats:
// - RFC3339 (e.g. 2025-01-01T10:30:00Z, 2025-06-15T14:00:00+05:00)
// - YYYY-MM-DDTHH:MM
// - YYYY-MM-DDTHH:MM:SS
//
// Zone-less values are interpreted in loc.
func ParseDatetime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("invalid datetime: empty")
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, format := range []string{"2006-01-02T15:04", DatetimeLayout} {
		if t, err := time.ParseInLocation(format, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime: %q", s)
}

// ParseBase parses a reference-instant argument which can be:
// - "", "now" (now)
// - "today", "yesterday", "tomorrow" (now shifted by whole days, clock kept)
// - "YYYY-MM-DD" (midnight of that date in now's location)
// - any datetime accepted by ParseDatetime
func ParseBase(arg string, now time.Time) (time.Time, error) {
	value := strings.ToLower(strings.TrimSpace(arg))
	switch value {
	case "", "now", "today":
		return now, nil
	case "yesterday":
		return AddDays(now, -1), nil
	case "tomorrow":
		return AddDays(now, 1), nil
	}

	if IsValidDate(value) {
		d, _ := time.ParseInLocation(DateLayout, value, now.Location())
		return d, nil
	}
	t, err := ParseDatetime(strings.TrimSpace(arg), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid base '%s', use YYYY-MM-DD, RFC3339 or today/yesterday/tomorrow", strings.TrimSpace(arg))
	}
	return t, nil
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays shifts t by whole calendar days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// FormatISO formats t as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(DateLayout)
}

// InLocation re-expresses t's wall clock in loc without converting the instant.
func InLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
