package patient

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/models"
)

type reviewInput struct {
	DoctorID      uint    `json:"doctor_id"`
	Rating        float64 `json:"rating"`
	Comment       string  `json:"comment"`
	IsAnonymous   bool    `json:"is_anonymous"`
	AppointmentID *uint   `json:"appointment_id"`
}

// CreateReview lets a patient review a doctor once. A review linked to a
// completed appointment is marked verified.
func CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(reviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, input.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	review := models.Review{
		DoctorID:      input.DoctorID,
		PatientID:     userID,
		Rating:        input.Rating,
		Comment:       input.Comment,
		IsAnonymous:   input.IsAnonymous,
		AppointmentID: input.AppointmentID,
	}

	exists, err := review.HasExistingReview(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check existing reviews",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already reviewed this doctor",
		})
	}

	if input.AppointmentID != nil {
		var appt models.Appointment
		if err := db.DB.Where("id = ? AND patient_id = ? AND doctor_id = ? AND status = ?",
			*input.AppointmentID, userID, input.DoctorID, models.StatusCompleted).
			First(&appt).Error; err == nil {
			review.IsVerified = true
		}
	}

	if err := db.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review",
		})
	}

	// Refresh the doctor's aggregate rating
	var avg float64
	db.DB.Model(&models.Review{}).
		Where("doctor_id = ? AND deleted_at IS NULL", input.DoctorID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg)
	db.DB.Model(&doctor).Update("rating", avg)

	return c.Status(fiber.StatusCreated).JSON(review)
}
