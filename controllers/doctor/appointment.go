package doctor

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/telecure/telecure-server/availability"
	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/models"
	"github.com/telecure/telecure-server/utils"
)

// GetUpcomingAppointments returns upcoming appointments for the logged-in
// doctor, optionally filtered to today, tomorrow, week or month.
func GetUpcomingAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	limit := 10 // Default limit
	if c.Query("limit") != "" {
		if parsedLimit := c.QueryInt("limit"); parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	now := time.Now()
	startDate := now
	endDate := now.AddDate(0, 1, 0)

	dateFilter := c.Query("filter", "month")
	switch dateFilter {
	case "today":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	case "tomorrow":
		tomorrow := now.AddDate(0, 0, 1)
		startDate = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 23, 59, 59, 0, now.Location())
	case "week":
		endDate = now.AddDate(0, 0, 7)
	case "month":
		endDate = now.AddDate(0, 1, 0)
	}

	var appointments []models.Appointment
	query := db.DB.
		Preload("Patient").
		Where("doctor_id = ?", userID).
		Where("start_time >= ?", startDate).
		Where("start_time <= ?", endDate).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Order("start_time asc").
		Limit(limit)

	if err := query.Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
		"filter":       dateFilter,
		"start_date":   startDate.Format("2006-01-02"),
		"end_date":     endDate.Format("2006-01-02"),
	})
}

// GetAppointmentHistory returns past appointments for the logged-in doctor.
func GetAppointmentHistory(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	limit := 20
	if c.Query("limit") != "" {
		if parsedLimit := c.QueryInt("limit"); parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	var appointments []models.Appointment
	if err := db.DB.
		Preload("Patient").
		Where("doctor_id = ?", userID).
		Where("start_time < ? OR status IN ?", time.Now(),
			[]models.AppointmentStatus{models.StatusCompleted, models.StatusCanceled}).
		Order("start_time desc").
		Limit(limit).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// UpdateAppointmentStatus moves an appointment through its lifecycle.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)

	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment ID",
		})
	}

	var updateData struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	newStatus := models.AppointmentStatus(updateData.Status)
	if newStatus != models.StatusConfirmed &&
		newStatus != models.StatusCanceled &&
		newStatus != models.StatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status. Must be 'confirmed', 'canceled', or 'completed'.",
		})
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Patient").Preload("Doctor").First(&appointment, appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if appointment.DoctorID != userID && role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update your own appointments",
		})
	}

	if err := appointment.UpdateStatus(db.DB, newStatus); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment status updated successfully",
		"appointment": appointment,
	})
}

// RescheduleAppointment moves an appointment to a new slot the doctor
// actually offers and that does not collide with another booking.
func RescheduleAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)

	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment ID",
		})
	}

	var input struct {
		Date      string `json:"date"` // "YYYY-MM-DD"
		TimeLabel string `json:"time_label"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.DoctorID != userID && role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only reschedule your own appointments",
		})
	}
	if appointment.Status == models.StatusCompleted || appointment.Status == models.StatusCanceled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot reschedule a completed or canceled appointment",
		})
	}

	date, err := utils.ParseDateParam(input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format, use YYYY-MM-DD",
		})
	}

	var stored []models.AvailabilityEntry
	if err := db.DB.Where("doctor_id = ?", appointment.DoctorID).Order("id asc").Find(&stored).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve availability",
		})
	}

	if !slotOffered(models.EntriesOf(stored), date, input.TimeLabel) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "The selected slot is not offered on that date",
		})
	}

	startTime, err := utils.SlotStart(date, input.TimeLabel)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	endTime := startTime.Add(availability.SlotInterval)

	free, err := utils.CheckSlotFree(db.DB, appointment.DoctorID, startTime, endTime)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error checking availability",
		})
	}
	if !free {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "The requested time slot conflicts with existing appointments",
		})
	}

	appointment.StartTime = startTime
	appointment.EndTime = endTime
	appointment.TimeLabel = input.TimeLabel
	if err := db.DB.Save(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reschedule appointment",
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment rescheduled successfully",
		"appointment": appointment,
	})
}

// slotOffered re-derives the slot list for the date and checks the label.
func slotOffered(entries []availability.Entry, date time.Time, label string) bool {
	for _, slot := range availability.TimeSlots(entries, date) {
		if slot == label {
			return true
		}
	}
	return false
}
