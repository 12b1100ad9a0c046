package db

import (
	"fmt"
	"log"

	"github.com/telecure/telecure-server/models"
)

// Migrate runs AutoMigrate for all models. Init must have been called.
func Migrate() {
	err := DB.AutoMigrate(
		&models.Doctor{},
		&models.Patient{},
		&models.MedicalCertificate{},
		&models.AvailabilityEntry{},
		&models.Appointment{},
		&models.Prescription{},
		&models.Review{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
