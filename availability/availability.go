package availability

import (
	"fmt"
	"time"
)

// Kind tells whether an entry repeats weekly or holds for a single date.
type Kind string

const (
	Recurring Kind = "recurring"
	OneTime   Kind = "one_time"
)

// ValidDays are the only accepted weekday names for recurring entries.
// Matching is case-sensitive, "monday" is not a valid day.
var ValidDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// RawEntry is one availability window as submitted by the profile editor.
// Date arrives as a string because the payload is operator-controlled and
// may not parse; ValidateBatch owns that check.
type RawEntry struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"` // "HH:MM" 24h
	EndTime   string `json:"end_time"`   // "HH:MM" 24h
	Recurring bool   `json:"recurring"`
	Date      string `json:"date"`
}

// Entry is a validated availability window. Exactly one of Day/Date is
// populated: Day for recurring entries, Date for one-time entries.
type Entry struct {
	Day       string     `json:"day"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Recurring bool       `json:"recurring"`
	Date      *time.Time `json:"date"`
}

// Kind derives the variant from the recurring flag.
func (e Entry) Kind() Kind {
	if e.Recurring {
		return Recurring
	}
	return OneTime
}

// ValidationError reports the first entry that failed batch validation.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("availability entry %d: %s", e.Index, e.Reason)
}

const timeLayout = "15:04"

// dateLayouts are the accepted one-time date formats. The profile editor
// sends ISO-8601, with or without a time component.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ValidateBatch validates and normalizes a full availability batch. It is
// all-or-nothing: the first invalid entry aborts the batch and nothing is
// returned. On success every recurring entry has a nil Date and every
// one-time entry has an empty Day, so the stored list always satisfies the
// one-of-day-or-date invariant.
func ValidateBatch(raw []RawEntry) ([]Entry, error) {
	out := make([]Entry, 0, len(raw))
	for i, r := range raw {
		if r.StartTime == "" || r.EndTime == "" {
			return nil, &ValidationError{Index: i, Reason: "missing time range"}
		}

		entry := Entry{
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Recurring: r.Recurring,
		}

		if r.Recurring {
			if !isValidDay(r.Day) {
				return nil, &ValidationError{Index: i, Reason: "missing or invalid day"}
			}
			entry.Day = r.Day
		} else {
			if r.Date == "" {
				return nil, &ValidationError{Index: i, Reason: "missing date"}
			}
			date, err := parseDate(r.Date)
			if err != nil {
				return nil, &ValidationError{Index: i, Reason: "invalid date"}
			}
			entry.Date = &date
		}

		start, err := time.Parse(timeLayout, r.StartTime)
		if err != nil {
			return nil, &ValidationError{Index: i, Reason: "missing time range"}
		}
		end, err := time.Parse(timeLayout, r.EndTime)
		if err != nil {
			return nil, &ValidationError{Index: i, Reason: "missing time range"}
		}
		if !start.Before(end) {
			return nil, &ValidationError{Index: i, Reason: "start not before end"}
		}

		out = append(out, entry)
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func isValidDay(day string) bool {
	for _, d := range ValidDays {
		if day == d {
			return true
		}
	}
	return false
}

// LookaheadDays is the booking window presented to patients.
const LookaheadDays = 14

// CandidateDates returns the dates within the lookahead window on which the
// doctor has any availability, starting at today inclusive, in ascending
// order. A date qualifies when a recurring entry matches its weekday or a
// one-time entry falls on that exact date.
func CandidateDates(entries []Entry, lookaheadDays int, today time.Time) []time.Time {
	dates := []time.Time{}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	for i := 0; i < lookaheadDays; i++ {
		date := day.AddDate(0, 0, i)
		if hasAvailabilityOn(entries, date) {
			dates = append(dates, date)
		}
	}
	return dates
}

func hasAvailabilityOn(entries []Entry, date time.Time) bool {
	weekday := date.Weekday().String()
	for _, e := range entries {
		if e.Recurring && e.Day == weekday {
			return true
		}
		if !e.Recurring && e.Date != nil && sameDate(*e.Date, date) {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SlotInterval is the fixed consultation slot length.
const SlotInterval = 30 * time.Minute

// TimeSlots returns the bookable start times for the selected date as
// 12-hour clock labels ("9:00 AM"). The first recurring entry matching the
// weekday wins, then the first one-time entry matching the date. Labels are
// emitted every 30 minutes while strictly before the window end, so the last
// slot may extend past it. No match, or a window whose end is not after its
// start, yields an empty list.
func TimeSlots(entries []Entry, selectedDate time.Time) []string {
	entry, ok := entryFor(entries, selectedDate)
	if !ok {
		return []string{}
	}

	start, err := time.Parse(timeLayout, entry.StartTime)
	if err != nil {
		return []string{}
	}
	end, err := time.Parse(timeLayout, entry.EndTime)
	if err != nil {
		return []string{}
	}

	slots := []string{}
	for t := start; t.Before(end); t = t.Add(SlotInterval) {
		slots = append(slots, t.Format("3:04 PM"))
	}
	return slots
}

// entryFor resolves which availability window governs the selected date.
func entryFor(entries []Entry, date time.Time) (Entry, bool) {
	weekday := date.Weekday().String()
	for _, e := range entries {
		if e.Recurring && e.Day == weekday {
			return e, true
		}
	}
	for _, e := range entries {
		if !e.Recurring && e.Date != nil && sameDate(*e.Date, date) {
			return e, true
		}
	}
	return Entry{}, false
}
