package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment is a booked consultation. StartTime/EndTime are the concrete
// interval resolved from the patient's (date, time label) selection; slots
// are fixed-length, so EndTime is always StartTime plus the slot interval.
type Appointment struct {
	gorm.Model
	DoctorID  uint              `json:"doctor_id" gorm:"index"`
	Doctor    Doctor            `json:"doctor" gorm:"foreignKey:DoctorID"`
	PatientID uint              `json:"patient_id" gorm:"index"`
	Patient   Patient           `json:"patient" gorm:"foreignKey:PatientID"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	TimeLabel string            `json:"time_label"` // e.g. "9:00 AM", as shown to the patient
	Reason    string            `json:"reason"`
	Status    AppointmentStatus `json:"status"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// CanTransition reports whether the appointment may move to newStatus.
// Pending moves to confirmed or canceled, confirmed to completed or
// canceled; completed and canceled are terminal.
func (a *Appointment) CanTransition(newStatus AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return newStatus == StatusConfirmed || newStatus == StatusCanceled
	case StatusConfirmed:
		return newStatus == StatusCompleted || newStatus == StatusCanceled
	default:
		return false
	}
}

// UpdateStatus applies a guarded status transition and saves the record.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if !a.CanTransition(newStatus) {
		return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
	}
	a.Status = newStatus
	return tx.Save(a).Error
}
