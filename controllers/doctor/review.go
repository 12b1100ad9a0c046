package doctor

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/models"
)

// GetReviews lists a doctor's reviews. Anonymous reviews have the patient
// hidden.
func GetReviews(c *fiber.Ctx) error {
	doctorID := c.Params("id")

	var reviews []models.Review
	if err := db.DB.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reviews",
		})
	}

	for i := range reviews {
		reviews[i].Patient.Password = ""
		if reviews[i].IsAnonymous {
			reviews[i].Patient = models.Patient{}
			reviews[i].PatientID = 0
		}
	}

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
