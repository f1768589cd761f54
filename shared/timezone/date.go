package timezone

import (
	"fmt"
	"strings"
	"time"
)

const hoursPerDay = 24

// Date returns the calendar day of t, in t's own location, as UTC midnight.
// Stay dates are compared and stored in this form.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar day in the application timezone.
func Today() time.Time {
	return Date(Now())
}

// ParseDate parses a YYYY-MM-DD value into a calendar day.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}

	return Date(t), nil
}

func FormatDate(t time.Time) string {
	return Date(t).Format(time.DateOnly)
}

// Nights counts the nights in the half-open stay [checkIn, checkOut).
// It is zero or negative for an invalid range.
func Nights(checkIn, checkOut time.Time) int {
	return int(Date(checkOut).Sub(Date(checkIn)).Hours() / hoursPerDay)
}
