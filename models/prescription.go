package models

import (
	"gorm.io/gorm"
)

type PrescriptionStatus string

const (
	PrescriptionIssued PrescriptionStatus = "issued"
	PrescriptionMinted PrescriptionStatus = "minted"
	PrescriptionTraded PrescriptionStatus = "traded"
)

// Prescription is issued by a doctor for a completed or confirmed
// consultation. TokenID is the reference assigned by the external chain
// layer when the prescription is minted; this service only records it.
type Prescription struct {
	gorm.Model
	Reference     string             `json:"reference" gorm:"uniqueIndex"` // server-assigned uuid
	DoctorID      uint               `json:"doctor_id" gorm:"index"`
	Doctor        Doctor             `json:"doctor" gorm:"foreignKey:DoctorID"`
	PatientID     uint               `json:"patient_id" gorm:"index"`
	Patient       Patient            `json:"patient" gorm:"foreignKey:PatientID"`
	AppointmentID *uint              `json:"appointment_id"`
	Medications   Medications        `json:"medications" gorm:"type:jsonb"`
	Notes         string             `json:"notes"`
	ImageURL      string             `json:"image_url"`
	ImageID       string             `json:"image_id,omitempty"`
	TokenID       string             `json:"token_id"`
	Status        PrescriptionStatus `json:"status"`
}

func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PrescriptionIssued
	}
	return nil
}
