package models

import (
	"time"

	"gorm.io/gorm"
)

// Doctor is a care provider. Specialty and qualifications are the KYC fields
// the profile editor manages; Availability is replaced as a whole batch, never
// patched entry by entry.
type Doctor struct {
	ID                  uint                `json:"id" gorm:"primaryKey"`
	Name                string              `json:"name"`
	Email               string              `json:"email" gorm:"unique"`
	Phone               string              `json:"phone"`
	Password            string              `json:"password,omitempty"`
	GoogleID            *string             `json:"google_id,omitempty" gorm:"uniqueIndex"`
	Specialty           StringList          `json:"specialty" gorm:"type:jsonb"`
	Qualifications      StringList          `json:"qualifications" gorm:"type:jsonb"`
	Experience          int                 `json:"experience"`
	HospitalAffiliation string              `json:"hospital_affiliation"`
	ConsultationFee     float64             `json:"consultation_fee"`
	RegistrationNumber  string              `json:"registration_number"`
	Rating              float64             `json:"rating" gorm:"default:0"`
	ProfileImageURL     string              `json:"profile_image_url"`
	ProfileImageID      string              `json:"profile_image_id,omitempty"`
	IsVerified          bool                `json:"is_verified" gorm:"default:false"`
	Availability        []AvailabilityEntry `json:"availability,omitempty" gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
	Appointments        []Appointment       `json:"appointments,omitempty" gorm:"foreignKey:DoctorID"`
	Prescriptions       []Prescription      `json:"prescriptions,omitempty" gorm:"foreignKey:DoctorID"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
	DeletedAt           gorm.DeletedAt      `json:"deleted_at,omitempty" gorm:"index"`
}
