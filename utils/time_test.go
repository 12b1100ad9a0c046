package utils

import (
	"testing"
	"time"
)

func TestSlotStart(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		label    string
		wantHour int
		wantMin  int
	}{
		{"9:00 AM", 9, 0},
		{"9:30 AM", 9, 30},
		{"12:00 PM", 12, 0},
		{"12:30 AM", 0, 30},
		{"4:30 PM", 16, 30},
	}

	for _, tt := range tests {
		got, err := SlotStart(date, tt.label)
		if err != nil {
			t.Errorf("SlotStart(%q) returned error: %v", tt.label, err)
			continue
		}
		if got.Hour() != tt.wantHour || got.Minute() != tt.wantMin {
			t.Errorf("SlotStart(%q) = %02d:%02d, want %02d:%02d",
				tt.label, got.Hour(), got.Minute(), tt.wantHour, tt.wantMin)
		}
		if got.Year() != 2026 || got.Month() != time.September || got.Day() != 7 {
			t.Errorf("SlotStart(%q) lost the date: %v", tt.label, got)
		}
	}
}

func TestSlotStartInvalidLabel(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	for _, label := range []string{"", "25:00", "9am", "09:00"} {
		if _, err := SlotStart(date, label); err == nil {
			t.Errorf("SlotStart(%q) expected error, got nil", label)
		}
	}
}

func TestParseDateParam(t *testing.T) {
	got, err := ParseDateParam("2026-09-14")
	if err != nil {
		t.Fatalf("ParseDateParam returned error: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.September || got.Day() != 14 {
		t.Errorf("ParseDateParam = %v, want 2026-09-14", got)
	}

	if _, err := ParseDateParam("14/09/2026"); err == nil {
		t.Error("ParseDateParam accepted a non-ISO date")
	}
}
