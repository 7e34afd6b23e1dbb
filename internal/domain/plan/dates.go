package plan

import "time"

// Dates are compared at day granularity in UTC throughout this package.
// Normalizing to a canonical zone before zeroing the time-of-day avoids
// the day-boundary mismatches that local-time zeroing produces when client
// and server disagree on timezone.

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
