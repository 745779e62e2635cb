package utils

import (
	"fmt"
	"regexp"
	"time"
)

// Clients send booking dates either as DD-MM-YYYY or as ISO YYYY-MM-DD.
var ddmmyyyyPattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// ParseBookingDate parses a date in DD-MM-YYYY format, falling back to ISO.
func ParseBookingDate(dateStr string) (time.Time, error) {
	if ddmmyyyyPattern.MatchString(dateStr) {
		d, err := time.Parse("02-01-2006", dateStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
		}
		return d, nil
	}

	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return d, nil
}

// SameCalendarDate reports whether two date strings refer to the same calendar
// date, regardless of which of the two formats each side uses.
func SameCalendarDate(a, b string) bool {
	da, err := ParseBookingDate(a)
	if err != nil {
		return false
	}
	db, err := ParseBookingDate(b)
	if err != nil {
		return false
	}
	return da.Equal(db)
}

// ParseDeparture combines a booking date and a HH:MM slot time into the
// departure instant, in local time.
func ParseDeparture(dateStr, timeStr string) (time.Time, error) {
	d, err := ParseBookingDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", timeStr, err)
	}

	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
