package doctor

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/telecure/telecure-server/availability"
	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/models"
	"github.com/telecure/telecure-server/redis"
	"github.com/telecure/telecure-server/utils"
)

// UpdateAvailability validates a full availability batch and replaces the
// doctor's stored entries. All-or-nothing: a single bad entry rejects the
// request and the stored list is untouched.
func UpdateAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		Availability []availability.RawEntry `json:"availability"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	entries, err := availability.ValidateBatch(input.Availability)
	if err != nil {
		var verr *availability.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: verr.Reason,
				Error:   verr.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid availability",
			Error:   err.Error(),
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", userID).Delete(&models.AvailabilityEntry{}).Error; err != nil {
			return err
		}
		rows := models.RowsOf(userID, entries)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update availability",
			Error:   err.Error(),
		})
	}

	redis.CacheInvalidate(redis.VerifiedDoctorsKey)

	var stored []models.AvailabilityEntry
	db.DB.Where("doctor_id = ?", userID).Order("id asc").Find(&stored)

	return c.JSON(fiber.Map{
		"message":      "Availability updated successfully",
		"availability": stored,
	})
}

// GetAvailability returns a doctor's stored availability entries.
func GetAvailability(c *fiber.Ctx) error {
	doctorID := c.Params("id")

	var stored []models.AvailabilityEntry
	if err := db.DB.Where("doctor_id = ?", doctorID).Order("id asc").Find(&stored).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve availability",
		})
	}

	return c.JSON(fiber.Map{
		"availability": stored,
	})
}

// GetCandidateDates returns the dates in the next two weeks on which the
// doctor can be booked. No availability simply means an empty list.
func GetCandidateDates(c *fiber.Ctx) error {
	doctorID := c.Params("id")

	var stored []models.AvailabilityEntry
	if err := db.DB.Where("doctor_id = ?", doctorID).Order("id asc").Find(&stored).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve availability",
		})
	}

	dates := availability.CandidateDates(models.EntriesOf(stored), availability.LookaheadDays, time.Now())
	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format("2006-01-02")
	}

	return c.JSON(fiber.Map{
		"doctor_id": doctorID,
		"dates":     formatted,
	})
}

// GetTimeSlots returns the 30-minute slot labels for a selected date.
func GetTimeSlots(c *fiber.Ctx) error {
	doctorID := c.Params("id")

	date, err := utils.ParseDateParam(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format, use YYYY-MM-DD",
		})
	}

	var stored []models.AvailabilityEntry
	if err := db.DB.Where("doctor_id = ?", doctorID).Order("id asc").Find(&stored).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve availability",
		})
	}

	slots := availability.TimeSlots(models.EntriesOf(stored), date)

	return c.JSON(fiber.Map{
		"doctor_id": doctorID,
		"date":      c.Query("date"),
		"slots":     slots,
	})
}
