package availability

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func recurring(day, start, end string) RawEntry {
	return RawEntry{Day: day, StartTime: start, EndTime: end, Recurring: true}
}

func oneTime(date, start, end string) RawEntry {
	return RawEntry{Date: date, StartTime: start, EndTime: end, Recurring: false}
}

func TestValidateBatchNormalizesRecurring(t *testing.T) {
	got, err := ValidateBatch([]RawEntry{recurring("Monday", "09:00", "11:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].Date != nil {
		t.Errorf("recurring entry should have nil date, got %v", got[0].Date)
	}
	if got[0].Day != "Monday" {
		t.Errorf("expected day Monday, got %q", got[0].Day)
	}
	if got[0].Kind() != Recurring {
		t.Errorf("expected recurring kind, got %q", got[0].Kind())
	}
}

func TestValidateBatchNormalizesOneTime(t *testing.T) {
	got, err := ValidateBatch([]RawEntry{oneTime("2026-09-14", "09:00", "11:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Day != "" {
		t.Errorf("one-time entry should have empty day, got %q", got[0].Day)
	}
	if got[0].Date == nil {
		t.Fatal("one-time entry should have a parsed date")
	}
	want := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	if !got[0].Date.Equal(want) {
		t.Errorf("expected date %v, got %v", want, got[0].Date)
	}
	if got[0].Kind() != OneTime {
		t.Errorf("expected one-time kind, got %q", got[0].Kind())
	}
}

func TestValidateBatchRejections(t *testing.T) {
	cases := []struct {
		name   string
		entry  RawEntry
		reason string
	}{
		{"missing start", RawEntry{Day: "Monday", EndTime: "11:00", Recurring: true}, "missing time range"},
		{"missing end", RawEntry{Day: "Monday", StartTime: "09:00", Recurring: true}, "missing time range"},
		{"missing both times one-time", RawEntry{Date: "2026-09-14"}, "missing time range"},
		{"garbled start", recurring("Monday", "9 o'clock", "11:00"), "missing time range"},
		{"invalid day", recurring("Funday", "09:00", "11:00"), "missing or invalid day"},
		{"lowercase day", recurring("monday", "09:00", "11:00"), "missing or invalid day"},
		{"empty day", recurring("", "09:00", "11:00"), "missing or invalid day"},
		{"missing date", oneTime("", "09:00", "11:00"), "missing date"},
		{"unparseable date", oneTime("not-a-date", "09:00", "11:00"), "invalid date"},
		{"start equals end", recurring("Monday", "09:00", "09:00"), "start not before end"},
		{"start after end", recurring("Monday", "11:00", "09:00"), "start not before end"},
		// Entries invalid on both axes report the day/date problem; the
		// range comparison only applies to entries whose kind checks pass.
		{"invalid day and reversed times", recurring("Funday", "11:00", "09:00"), "missing or invalid day"},
		{"bad date and reversed times", oneTime("not-a-date", "11:00", "09:00"), "invalid date"},
		{"missing date and reversed times", oneTime("", "11:00", "09:00"), "missing date"},
		{"empty times and invalid day", RawEntry{Day: "Funday", Recurring: true}, "missing time range"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateBatch([]RawEntry{tc.entry})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Reason != tc.reason {
				t.Errorf("expected reason %q, got %q", tc.reason, verr.Reason)
			}
		})
	}
}

func TestValidateBatchFailFast(t *testing.T) {
	batch := []RawEntry{
		recurring("Monday", "09:00", "11:00"),
		recurring("Funday", "09:00", "11:00"),
		recurring("Tuesday", "09:00", "11:00"),
	}

	got, err := ValidateBatch(batch)
	if got != nil {
		t.Errorf("failed batch must not return a partial list, got %d entries", len(got))
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Index != 1 {
		t.Errorf("expected failure at index 1, got %d", verr.Index)
	}
}

func TestValidateBatchAcceptsRFC3339Date(t *testing.T) {
	got, err := ValidateBatch([]RawEntry{oneTime("2026-09-14T00:00:00Z", "09:00", "10:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Date == nil || got[0].Date.Day() != 14 {
		t.Errorf("expected September 14, got %v", got[0].Date)
	}
}

func TestCandidateDatesRecurring(t *testing.T) {
	entries, err := ValidateBatch([]RawEntry{recurring("Monday", "09:00", "11:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2026-09-06 is a Sunday.
	today := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	got := CandidateDates(entries, LookaheadDays, today)

	want := []time.Time{
		time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected the two Mondays %v, got %v", want, got)
	}
}

func TestCandidateDatesOneTime(t *testing.T) {
	entries, err := ValidateBatch([]RawEntry{oneTime("2026-09-10", "09:00", "11:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	today := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	got := CandidateDates(entries, LookaheadDays, today)
	if len(got) != 1 || got[0].Day() != 10 {
		t.Errorf("expected exactly September 10, got %v", got)
	}

	// Outside the lookahead window nothing matches.
	got = CandidateDates(entries, LookaheadDays, today.AddDate(0, 1, 0))
	if len(got) != 0 {
		t.Errorf("expected no dates outside the window, got %v", got)
	}
}

func TestCandidateDatesIncludesToday(t *testing.T) {
	entries, _ := ValidateBatch([]RawEntry{recurring("Sunday", "09:00", "10:00")})
	today := time.Date(2026, 9, 6, 15, 30, 0, 0, time.UTC) // a Sunday afternoon
	got := CandidateDates(entries, LookaheadDays, today)
	if len(got) == 0 || !sameDate(got[0], today) {
		t.Errorf("window starts at today inclusive, got %v", got)
	}
}

func TestCandidateDatesEmptyAvailability(t *testing.T) {
	today := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	if got := CandidateDates(nil, LookaheadDays, today); len(got) != 0 {
		t.Errorf("expected no dates for empty availability, got %v", got)
	}
}

func TestTimeSlots(t *testing.T) {
	entries, err := ValidateBatch([]RawEntry{recurring("Monday", "09:00", "11:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	got := TimeSlots(entries, monday)
	want := []string{"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTimeSlotsAfternoonLabels(t *testing.T) {
	entries, _ := ValidateBatch([]RawEntry{recurring("Monday", "13:00", "14:30")})
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	got := TimeSlots(entries, monday)
	want := []string{"1:00 PM", "1:30 PM", "2:00 PM"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTimeSlotsOneTimeEntry(t *testing.T) {
	entries, _ := ValidateBatch([]RawEntry{oneTime("2026-09-10", "10:00", "11:00")})
	got := TimeSlots(entries, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	want := []string{"10:00 AM", "10:30 AM"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if got := TimeSlots(entries, time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)); len(got) != 0 {
		t.Errorf("other dates have no slots, got %v", got)
	}
}

func TestTimeSlotsRecurringWinsOverOneTime(t *testing.T) {
	entries, _ := ValidateBatch([]RawEntry{
		oneTime("2026-09-07", "14:00", "15:00"),
		recurring("Monday", "09:00", "10:00"),
	})
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	got := TimeSlots(entries, monday)
	want := []string{"9:00 AM", "9:30 AM"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recurring entry should resolve first, expected %v, got %v", want, got)
	}
}

func TestTimeSlotsZeroLengthWindow(t *testing.T) {
	// A degenerate window reaching the enumerator degrades to no slots.
	entries := []Entry{{Day: "Monday", StartTime: "09:00", EndTime: "09:00", Recurring: true}}
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	if got := TimeSlots(entries, monday); len(got) != 0 {
		t.Errorf("expected no slots for a zero-length window, got %v", got)
	}
}

func TestTimeSlotsEmptyAvailability(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	if got := TimeSlots(nil, monday); len(got) != 0 {
		t.Errorf("expected no slots for empty availability, got %v", got)
	}
}

func TestEnumerationIsIdempotent(t *testing.T) {
	entries, _ := ValidateBatch([]RawEntry{recurring("Monday", "09:00", "11:00")})
	today := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	if !reflect.DeepEqual(CandidateDates(entries, LookaheadDays, today), CandidateDates(entries, LookaheadDays, today)) {
		t.Error("CandidateDates is not idempotent")
	}
	if !reflect.DeepEqual(TimeSlots(entries, monday), TimeSlots(entries, monday)) {
		t.Error("TimeSlots is not idempotent")
	}
}
