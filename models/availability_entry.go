package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/telecure/telecure-server/availability"
)

// AvailabilityEntry is the persisted form of one availability window. Day is
// the empty string when Recurring is false; Date is null when Recurring is
// true. Rows only ever enter the table through availability.ValidateBatch,
// which enforces that shape.
type AvailabilityEntry struct {
	gorm.Model
	DoctorID  uint       `json:"doctor_id" gorm:"index"`
	Day       string     `json:"day"`
	StartTime string     `json:"start_time"` // "HH:MM" 24h
	EndTime   string     `json:"end_time"`   // "HH:MM" 24h
	Recurring bool       `json:"recurring" gorm:"default:true"`
	Date      *time.Time `json:"date"`
}

// ToEntry converts the persisted row to the enumerator's value type.
func (e AvailabilityEntry) ToEntry() availability.Entry {
	return availability.Entry{
		Day:       e.Day,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Recurring: e.Recurring,
		Date:      e.Date,
	}
}

// EntriesOf converts a doctor's stored availability for enumeration.
func EntriesOf(rows []AvailabilityEntry) []availability.Entry {
	entries := make([]availability.Entry, len(rows))
	for i, row := range rows {
		entries[i] = row.ToEntry()
	}
	return entries
}

// RowsOf converts a validated batch into rows for the given doctor.
func RowsOf(doctorID uint, entries []availability.Entry) []AvailabilityEntry {
	rows := make([]AvailabilityEntry, len(entries))
	for i, entry := range entries {
		rows[i] = AvailabilityEntry{
			DoctorID:  doctorID,
			Day:       entry.Day,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			Recurring: entry.Recurring,
			Date:      entry.Date,
		}
	}
	return rows
}
