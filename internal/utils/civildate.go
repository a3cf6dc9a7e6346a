package utils

import (
	"fmt"
	"time"
)

// CivilDateLayout is the wire format for calendar dates at the API
// boundary.
const CivilDateLayout = "2006-01-02"

// ParseCivilDate parses a YYYY-MM-DD string into a date pinned to midnight
// UTC. The value represents the user's civil calendar date, not an instant;
// pinning to UTC keeps the date stable when the store and device clocks
// disagree.
func ParseCivilDate(s string) (time.Time, error) {
	t, err := time.Parse(CivilDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatCivilDate renders a date back into YYYY-MM-DD form.
func FormatCivilDate(t time.Time) string {
	return t.Format(CivilDateLayout)
}

// CivilDate strips the time-of-day and zone from t, keeping the calendar
// date it shows in its own location.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day distance from a to b. Negative when b
// is before a.
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)).Hours() / 24)
}
