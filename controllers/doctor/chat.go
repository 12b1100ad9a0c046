package doctor

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/models"
)

// chatContact is one entry of the doctor's chat roster. The message
// transport itself is external; this endpoint only supplies who the doctor
// can talk to.
type chatContact struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profile_image_url"`
}

// GetChatPatients returns the doctor's deduplicated patient roster, derived
// from their appointments, most recent first.
func GetChatPatients(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var appointments []models.Appointment
	if err := db.DB.
		Preload("Patient").
		Where("doctor_id = ?", userID).
		Order("created_at desc").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch patients",
		})
	}

	seen := make(map[uint]bool)
	contacts := []chatContact{}
	for _, appt := range appointments {
		if seen[appt.PatientID] {
			continue
		}
		seen[appt.PatientID] = true
		contacts = append(contacts, chatContact{
			ID:              appt.Patient.ID,
			Name:            appt.Patient.Name,
			Email:           appt.Patient.Email,
			ProfileImageURL: appt.Patient.ProfileImageURL,
		})
	}

	return c.JSON(fiber.Map{
		"patients": contacts,
	})
}
