package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/middleware"
	"github.com/telecure/telecure-server/models"
	"github.com/telecure/telecure-server/redis"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func issueTokens(id uint, email, role string) (string, string, error) {
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.Secret())
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(refreshTokenTTL).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(middleware.Secret())
	if err != nil {
		return "", "", err
	}

	return token, refreshToken, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// RegisterDoctor creates a doctor account. Doctors start unverified; the
// verified flag is flipped by an operator after the KYC review.
func RegisterDoctor(c *fiber.Ctx) error {
	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name == "" || input.Password == "" || (input.Email == "" && input.Phone == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	var existing models.Doctor
	if db.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Doctor with this email already exists",
		})
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	doctor := models.Doctor{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: hashed,
	}
	if err := db.DB.Create(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create doctor: " + err.Error(),
		})
	}

	token, refreshToken, err := issueTokens(doctor.ID, doctor.Email, middleware.RoleDoctor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	doctor.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":         doctor,
		"token":        token,
		"refreshToken": refreshToken,
	})
}

// LoginDoctor authenticates a doctor by email and password.
func LoginDoctor(c *fiber.Ctx) error {
	input := new(loginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var doctor models.Doctor
	if db.DB.Where("email = ?", input.Email).First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, refreshToken, err := issueTokens(doctor.ID, doctor.Email, middleware.RoleDoctor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user": fiber.Map{
			"id":    doctor.ID,
			"name":  doctor.Name,
			"email": doctor.Email,
			"role":  middleware.RoleDoctor,
		},
	})
}

// RegisterPatient creates a patient account.
func RegisterPatient(c *fiber.Ctx) error {
	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name == "" || input.Password == "" || (input.Email == "" && input.Phone == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	var existing models.Patient
	if db.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Patient with this email already exists",
		})
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	patient := models.Patient{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: hashed,
	}
	if err := db.DB.Create(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create patient: " + err.Error(),
		})
	}

	token, refreshToken, err := issueTokens(patient.ID, patient.Email, middleware.RolePatient)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	patient.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":         patient,
		"token":        token,
		"refreshToken": refreshToken,
	})
}

// LoginPatient authenticates a patient by email and password.
func LoginPatient(c *fiber.Ctx) error {
	input := new(loginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var patient models.Patient
	if db.DB.Where("email = ?", input.Email).First(&patient).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, refreshToken, err := issueTokens(patient.ID, patient.Email, middleware.RolePatient)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user": fiber.Map{
			"id":    patient.ID,
			"name":  patient.Name,
			"email": patient.Email,
			"role":  middleware.RolePatient,
		},
	})
}

// Me returns the profile behind the current token.
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)

	switch role {
	case middleware.RoleDoctor:
		var doctor models.Doctor
		if err := db.DB.Preload("Availability").First(&doctor, userID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Doctor not found",
			})
		}
		doctor.Password = ""
		return c.JSON(doctor)
	default:
		var patient models.Patient
		if err := db.DB.Preload("Certificates").First(&patient, userID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Patient not found",
			})
		}
		patient.Password = ""
		return c.JSON(patient)
	}
}

// Logout denylists the presented access token for its remaining lifetime.
func Logout(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)

	ttl := accessTokenTTL
	if exp, ok := claims["exp"].(float64); ok {
		ttl = time.Until(time.Unix(int64(exp), 0))
	}
	if err := redis.DenyToken(token.Raw, ttl); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log out",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type refreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	req := new(refreshRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return middleware.Secret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	newClaims := jwt.MapClaims{
		"id":    claims["id"],
		"email": claims["email"],
		"role":  claims["role"],
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims).SignedString(middleware.Secret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}
