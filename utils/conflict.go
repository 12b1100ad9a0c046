package utils

import (
	"time"

	"gorm.io/gorm"

	"github.com/telecure/telecure-server/models"
)

// CheckSlotFree reports whether a doctor has no overlapping non-canceled
// appointment for the given interval. The query runs on the caller's tx so
// the FOR UPDATE locks are held until that transaction ends; pass the
// booking transaction to make the check-then-create race-free.
func CheckSlotFree(tx *gorm.DB, doctorID uint, startTime, endTime time.Time) (bool, error) {
	var existing models.Appointment
	err := tx.Raw(`
		SELECT *
		FROM appointments
		WHERE doctor_id = ? AND status != ? AND deleted_at IS NULL AND (
			(start_time < ? AND end_time > ?) OR
			(start_time >= ? AND start_time < ?)
		) FOR UPDATE
		LIMIT 1
	`, doctorID, models.StatusCanceled, endTime, startTime, startTime, endTime).
		Scan(&existing).Error
	if err != nil {
		return false, err
	}

	return existing.ID == 0, nil
}
