package shared

import (
	"time"
)

// DateLayout is the canonical calendar-date format used across the domain.
// Dates are stored as plain strings so they compare lexically.
const DateLayout = "2006-01-02"

// Today returns the current UTC date as a date string.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// DateOnly normalizes a date or ISO timestamp string to its date part.
// Inputs shorter than ten characters are returned unchanged.
func DateOnly(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}

// ValidDate reports whether s is a well-formed date string.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// AddDays returns the date string n days after the given date.
// Invalid inputs are returned unchanged.
func AddDays(date string, n int) string {
	t, err := time.Parse(DateLayout, DateOnly(date))
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// DaysBetween returns the whole number of days from one date to another.
// Returns 0 if either date is invalid.
func DaysBetween(from, to string) int {
	f, err := time.Parse(DateLayout, DateOnly(from))
	if err != nil {
		return 0
	}
	t, err := time.Parse(DateLayout, DateOnly(to))
	if err != nil {
		return 0
	}
	return int(t.Sub(f).Hours() / 24)
}

// DateBefore reports whether date a falls strictly before date b.
// Both are compared on their date part only.
func DateBefore(a, b string) bool {
	return DateOnly(a) < DateOnly(b)
}
