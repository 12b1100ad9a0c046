package models

import (
	"time"

	"gorm.io/gorm"
)

type Patient struct {
	ID              uint                 `json:"id" gorm:"primaryKey"`
	Name            string               `json:"name"`
	Email           string               `json:"email" gorm:"unique"`
	Phone           string               `json:"phone"`
	Password        string               `json:"password,omitempty"`
	GoogleID        *string              `json:"google_id,omitempty" gorm:"uniqueIndex"`
	BloodGroup      string               `json:"blood_group"`
	MedicalHistory  string               `json:"medical_history"`
	ProfileImageURL string               `json:"profile_image_url"`
	ProfileImageID  string               `json:"profile_image_id,omitempty"`
	Certificates    []MedicalCertificate `json:"certificates,omitempty" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	Appointments    []Appointment        `json:"appointments,omitempty" gorm:"foreignKey:PatientID"`
	Prescriptions   []Prescription       `json:"prescriptions,omitempty" gorm:"foreignKey:PatientID"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	DeletedAt       gorm.DeletedAt       `json:"deleted_at,omitempty" gorm:"index"`
}

// MedicalCertificate is an uploaded KYC document (lab report, referral,
// insurance card) attached to a patient profile.
type MedicalCertificate struct {
	gorm.Model
	PatientID uint   `json:"patient_id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
}
