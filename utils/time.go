package utils

import (
	"fmt"
	"time"
)

const slotLabelLayout = "3:04 PM"

// SlotStart combines a calendar date with a slot label ("9:00 AM") into the
// concrete appointment start time in the date's location.
func SlotStart(date time.Time, label string) (time.Time, error) {
	t, err := time.Parse(slotLabelLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time label %q", label)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// ParseDateParam parses a "YYYY-MM-DD" query parameter as a local date.
func ParseDateParam(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
