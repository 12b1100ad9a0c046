package prescription

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/telecure/telecure-server/analyzer"
	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/middleware"
	"github.com/telecure/telecure-server/models"
	"github.com/telecure/telecure-server/utils"
)

type issueInput struct {
	PatientID     uint               `json:"patient_id"`
	AppointmentID *uint              `json:"appointment_id"`
	Medications   models.Medications `json:"medications"`
	Notes         string             `json:"notes"`
}

// Issue creates a prescription for one of the doctor's patients. The chain
// layer picks it up from here; this service only records the issuance.
func Issue(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(issueInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.PatientID == 0 || len(input.Medications) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "patient_id and at least one medication are required",
		})
	}

	var target models.Patient
	if err := db.DB.First(&target, input.PatientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	if input.AppointmentID != nil {
		var appt models.Appointment
		if err := db.DB.Where("id = ? AND doctor_id = ? AND patient_id = ?",
			*input.AppointmentID, userID, input.PatientID).First(&appt).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Appointment does not belong to this doctor and patient",
			})
		}
	}

	rx := models.Prescription{
		Reference:     uuid.NewString(),
		DoctorID:      userID,
		PatientID:     input.PatientID,
		AppointmentID: input.AppointmentID,
		Medications:   input.Medications,
		Notes:         input.Notes,
	}
	if err := db.DB.Create(&rx).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create prescription",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(rx)
}

// List returns prescriptions for the caller: patients see their own,
// doctors see ones they issued.
func List(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)

	query := db.DB.Preload("Doctor").Preload("Patient").Order("created_at desc")
	if role == middleware.RoleDoctor {
		query = query.Where("doctor_id = ?", userID)
	} else {
		query = query.Where("patient_id = ?", userID)
	}

	var prescriptions []models.Prescription
	if err := query.Find(&prescriptions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch prescriptions",
			Error:   err.Error(),
		})
	}
	for i := range prescriptions {
		prescriptions[i].Doctor.Password = ""
		prescriptions[i].Patient.Password = ""
	}

	return c.JSON(fiber.Map{
		"prescriptions": prescriptions,
		"count":         len(prescriptions),
	})
}

// Get returns one prescription visible to the caller.
func Get(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)
	id := c.Params("id")

	var rx models.Prescription
	if err := db.DB.Preload("Doctor").Preload("Patient").First(&rx, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Prescription not found",
			Error:   err.Error(),
		})
	}

	if role == middleware.RoleDoctor && rx.DoctorID != userID ||
		role == middleware.RolePatient && rx.PatientID != userID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You cannot view this prescription",
		})
	}

	rx.Doctor.Password = ""
	rx.Patient.Password = ""
	return c.JSON(rx)
}

// RecordToken stores the token reference assigned by the external chain
// layer after minting, moving the prescription to minted status.
func RecordToken(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var input struct {
		TokenID string `json:"token_id"`
	}
	if err := c.BodyParser(&input); err != nil || input.TokenID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "token_id is required",
		})
	}

	var rx models.Prescription
	if err := db.DB.Where("id = ? AND patient_id = ?", id, userID).First(&rx).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Prescription not found",
		})
	}

	rx.TokenID = input.TokenID
	rx.Status = models.PrescriptionMinted
	if err := db.DB.Save(&rx).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to record token",
			Error:   err.Error(),
		})
	}

	return c.JSON(rx)
}

// UploadImage attaches a scanned prescription image.
func UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)
	id := c.Params("id")

	var rx models.Prescription
	if err := db.DB.First(&rx, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Prescription not found",
		})
	}
	if role == middleware.RoleDoctor && rx.DoctorID != userID ||
		role == middleware.RolePatient && rx.PatientID != userID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You cannot modify this prescription",
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "image file is required",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read uploaded file",
		})
	}
	defer file.Close()

	publicID := fmt.Sprintf("rx_%s_%s", rx.Reference, uuid.NewString())
	url, assetID, err := utils.UploadToCloudinary(file, publicID, "telecure/prescriptions")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload image",
		})
	}

	rx.ImageURL = url
	rx.ImageID = assetID
	if err := db.DB.Save(&rx).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save prescription image",
		})
	}

	return c.JSON(rx)
}

// Analyze runs the prescription's image through the analysis microservice
// and returns the extracted medication lines.
func Analyze(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)
	id := c.Params("id")

	var rx models.Prescription
	if err := db.DB.First(&rx, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Prescription not found",
		})
	}
	if role == middleware.RoleDoctor && rx.DoctorID != userID ||
		role == middleware.RolePatient && rx.PatientID != userID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You cannot view this prescription",
		})
	}
	if rx.ImageURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Prescription has no image to analyze",
		})
	}

	result, err := analyzer.New().Analyze(c.Context(), rx.ImageURL)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(utils.ErrorResponse{
			Message: "Analysis service unavailable",
			Error:   err.Error(),
		})
	}

	return c.JSON(result)
}
