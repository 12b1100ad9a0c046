package patient

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/models"
	"github.com/telecure/telecure-server/utils"
)

// GetProfile returns the logged-in patient's profile.
func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var patient models.Patient
	if err := db.DB.Preload("Certificates").First(&patient, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}

	patient.Password = ""
	return c.JSON(patient)
}

type profileUpdateInput struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	BloodGroup     *string `json:"blood_group"`
	MedicalHistory *string `json:"medical_history"`
}

// UpdateProfile updates the logged-in patient's profile fields.
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(profileUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var patient models.Patient
	if err := db.DB.First(&patient, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}

	if input.Name != nil {
		patient.Name = *input.Name
	}
	if input.Phone != nil {
		patient.Phone = *input.Phone
	}
	if input.BloodGroup != nil {
		patient.BloodGroup = *input.BloodGroup
	}
	if input.MedicalHistory != nil {
		patient.MedicalHistory = *input.MedicalHistory
	}

	if err := db.DB.Save(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	patient.Password = ""
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    patient,
	})
}

// UploadProfilePicture uploads the patient's profile image.
func UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("profile_image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "profile_image file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer file.Close()

	publicID := fmt.Sprintf("patient_%d_%s", userID, uuid.NewString())
	url, assetID, err := utils.UploadToCloudinary(file, publicID, "telecure/patients")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload image",
		})
	}

	var patient models.Patient
	if err := db.DB.First(&patient, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}
	patient.ProfileImageURL = url
	patient.ProfileImageID = assetID
	if err := db.DB.Save(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save profile image",
		})
	}

	return c.JSON(fiber.Map{
		"message":           "Profile picture updated successfully",
		"profile_image_url": url,
	})
}

// UploadCertificate attaches a medical certificate (report, referral,
// insurance document) to the patient profile. Up to five are kept.
func UploadCertificate(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var count int64
	db.DB.Model(&models.MedicalCertificate{}).Where("patient_id = ?", userID).Count(&count)
	if count >= 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Certificate limit reached, delete one first",
		})
	}

	fileHeader, err := c.FormFile("certificate")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "certificate file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer file.Close()

	publicID := fmt.Sprintf("cert_%d_%s", userID, uuid.NewString())
	url, assetID, err := utils.UploadToCloudinary(file, publicID, "telecure/certificates")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload certificate",
		})
	}

	cert := models.MedicalCertificate{
		PatientID: userID,
		Name:      fileHeader.Filename,
		URL:       url,
		PublicID:  assetID,
	}
	if err := db.DB.Create(&cert).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save certificate",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(cert)
}

// DeleteCertificate removes a certificate and its uploaded asset.
func DeleteCertificate(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	certID := c.Params("id")

	var cert models.MedicalCertificate
	if err := db.DB.Where("id = ? AND patient_id = ?", certID, userID).First(&cert).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Certificate not found",
		})
	}

	if cert.PublicID != "" {
		utils.DeleteFromCloudinary(cert.PublicID)
	}
	if err := db.DB.Delete(&cert).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete certificate",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
