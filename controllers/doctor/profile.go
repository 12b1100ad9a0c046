package doctor

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/models"
	"github.com/telecure/telecure-server/redis"
	"github.com/telecure/telecure-server/utils"
)

// GetProfile returns a doctor's public profile.
func GetProfile(c *fiber.Ctx) error {
	id := c.Params("id")

	var doctor models.Doctor
	if err := db.DB.Preload("Availability").First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	doctor.Password = ""
	return c.JSON(fiber.Map{
		"user": doctor,
	})
}

type profileUpdateInput struct {
	Name                *string            `json:"name"`
	Phone               *string            `json:"phone"`
	Specialty           *models.StringList `json:"specialty"`
	Qualifications      *models.StringList `json:"qualifications"`
	Experience          *int               `json:"experience"`
	HospitalAffiliation *string            `json:"hospital_affiliation"`
	ConsultationFee     *float64           `json:"consultation_fee"`
	RegistrationNumber  *string            `json:"registration_number"`
}

// UpdateProfile updates the KYC fields of the logged-in doctor. Only listed
// fields can change; password and availability have their own endpoints.
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(profileUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	if input.Name != nil {
		doctor.Name = *input.Name
	}
	if input.Phone != nil {
		doctor.Phone = *input.Phone
	}
	if input.Specialty != nil {
		doctor.Specialty = *input.Specialty
	}
	if input.Qualifications != nil {
		doctor.Qualifications = *input.Qualifications
	}
	if input.Experience != nil {
		doctor.Experience = *input.Experience
	}
	if input.HospitalAffiliation != nil {
		doctor.HospitalAffiliation = *input.HospitalAffiliation
	}
	if input.ConsultationFee != nil {
		doctor.ConsultationFee = *input.ConsultationFee
	}
	if input.RegistrationNumber != nil {
		doctor.RegistrationNumber = *input.RegistrationNumber
	}

	if err := db.DB.Save(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	redis.CacheInvalidate(redis.VerifiedDoctorsKey)

	doctor.Password = ""
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    doctor,
	})
}

// UpdatePassword changes the logged-in doctor's password after verifying the
// current one.
func UpdatePassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Current and new password are required",
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(input.CurrentPassword)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Current password is incorrect",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	if err := db.DB.Model(&doctor).Update("password", string(hashed)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update password",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Password updated successfully",
	})
}

// GetVerifiedDoctors lists verified doctors that have availability on file.
// The listing is cached in redis and invalidated on profile or availability
// writes.
func GetVerifiedDoctors(c *fiber.Ctx) error {
	if payload, err := redis.CacheGet(redis.VerifiedDoctorsKey); err == nil {
		var doctors []models.Doctor
		if json.Unmarshal(payload, &doctors) == nil {
			return c.JSON(fiber.Map{
				"doctors": doctors,
				"cached":  true,
			})
		}
	}

	var doctors []models.Doctor
	if err := db.DB.Preload("Availability").
		Where("is_verified = ?", true).
		Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch doctors",
		})
	}

	// Only list doctors that can actually be booked
	listed := make([]models.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if len(d.Availability) == 0 {
			continue
		}
		d.Password = ""
		listed = append(listed, d)
	}

	if payload, err := json.Marshal(listed); err == nil {
		redis.CacheSet(redis.VerifiedDoctorsKey, payload, 5*time.Minute)
	}

	return c.JSON(fiber.Map{
		"doctors": listed,
	})
}

// SearchDoctors finds doctors by name or specialty, case-insensitive.
func SearchDoctors(c *fiber.Ctx) error {
	var input struct {
		Name           string `json:"name"`
		Specialization string `json:"specialization"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Name == "" && input.Specialization == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name or specialization is required",
		})
	}

	query := db.DB.Model(&models.Doctor{})
	if input.Name != "" {
		query = query.Where("name ILIKE ?", "%"+input.Name+"%")
	}
	if input.Specialization != "" {
		query = query.Or("specialty::text ILIKE ?", "%"+input.Specialization+"%")
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search doctors",
		})
	}
	for i := range doctors {
		doctors[i].Password = ""
	}

	return c.JSON(fiber.Map{
		"doctors": doctors,
	})
}

// GetDoctorsBySpecialty lists verified doctors for one specialty.
func GetDoctorsBySpecialty(c *fiber.Ctx) error {
	specialty := c.Params("specialty")
	if specialty == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Specialty is required",
		})
	}

	var doctors []models.Doctor
	if err := db.DB.Where("is_verified = ? AND specialty::text ILIKE ?", true, "%"+specialty+"%").
		Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch doctors",
		})
	}
	for i := range doctors {
		doctors[i].Password = ""
	}

	return c.JSON(fiber.Map{
		"doctors": doctors,
	})
}

// UploadProfileImage uploads the doctor's profile image to cloudinary and
// stores the returned URL.
func UploadProfileImage(c *fiber.Ctx) error {
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

	publicID := fmt.Sprintf("doctor_%d_%s", userID, uuid.NewString())
	url, assetID, err := utils.UploadToCloudinary(file, publicID, "telecure/doctors")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload image",
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}
	doctor.ProfileImageURL = url
	doctor.ProfileImageID = assetID
	if err := db.DB.Save(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save profile image",
		})
	}

	redis.CacheInvalidate(redis.VerifiedDoctorsKey)

	return c.JSON(fiber.Map{
		"message":           "Profile image updated successfully",
		"profile_image_url": url,
	})
}
