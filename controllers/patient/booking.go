package patient

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/telecure/telecure-server/availability"
	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/models"
	"github.com/telecure/telecure-server/utils"
)

type bookingInput struct {
	DoctorID  uint   `json:"doctor_id"`
	Date      string `json:"date"` // "YYYY-MM-DD"
	TimeLabel string `json:"time_label"`
	Reason    string `json:"reason"`
}

// BookAppointment books a consultation for the logged-in patient. The server
// re-derives the doctor's slots for the chosen date and rejects labels the
// doctor does not offer, then conflict-checks the concrete interval inside
// the creation transaction.
func BookAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(bookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var doctor models.Doctor
	if err := db.DB.Preload("Availability").First(&doctor, input.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	date, err := utils.ParseDateParam(input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, use YYYY-MM-DD",
		})
	}

	entries := models.EntriesOf(doctor.Availability)

	// The label must be one the enumerator would present for this date
	offered := false
	for _, slot := range availability.TimeSlots(entries, date) {
		if slot == input.TimeLabel {
			offered = true
			break
		}
	}
	if !offered {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "The selected slot is not offered on that date",
		})
	}

	startTime, err := utils.SlotStart(date, input.TimeLabel)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}
	endTime := startTime.Add(availability.SlotInterval)

	appointment := models.Appointment{
		DoctorID:  doctor.ID,
		PatientID: userID,
		StartTime: startTime,
		EndTime:   endTime,
		TimeLabel: input.TimeLabel,
		Reason:    input.Reason,
		Status:    models.StatusPending,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		free, err := utils.CheckSlotFree(tx, doctor.ID, startTime, endTime)
		if err != nil {
			return err
		}
		if !free {
			return fmt.Errorf("time slot not available")
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot not available or failed to create appointment",
			Error:   err.Error(),
		})
	}

	var booker models.Patient
	if err := db.DB.First(&booker, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	sendBookingEmails(&appointment, &doctor, &booker)

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func sendBookingEmails(appointment *models.Appointment, doctor *models.Doctor, booker *models.Patient) {
	when := appointment.StartTime.Format("2006-01-02") + " " + appointment.TimeLabel

	patientBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your consultation has been booked.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>When:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The Telecure Team</p>
	`, booker.Name, doctor.Name, when, appointment.Status)
	if err := utils.SendEmail(booker.Email, "Consultation Booked", patientBody); err != nil {
		fmt.Println("Failed to send booking email to patient:", err)
	}

	doctorBody := fmt.Sprintf(`
		<p>Dear Dr. %s,</p>
		<p>A new consultation has been booked with you.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Patient:</strong> %s</li>
			<li><strong>When:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The Telecure Team</p>
	`, doctor.Name, booker.Name, when, appointment.Status)
	if err := utils.SendEmail(doctor.Email, "New Consultation Booked", doctorBody); err != nil {
		fmt.Println("Failed to send booking email to doctor:", err)
	}
}

// GetMyAppointments lists the logged-in patient's appointments.
func GetMyAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var appointments []models.Appointment
	if err := db.DB.Preload("Doctor").
		Where("patient_id = ?", userID).
		Order("start_time desc").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetAppointment returns one of the patient's appointments.
func GetAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.Preload("Doctor").
		Where("id = ? AND patient_id = ?", id, userID).
		First(&appointment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	return c.JSON(appointment)
}

// CancelAppointment cancels one of the patient's own appointments.
func CancelAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.Where("id = ? AND patient_id = ?", id, userID).First(&appointment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusCanceled); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot cancel this appointment",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment canceled",
		"appointment": appointment,
	})
}
