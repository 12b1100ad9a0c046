package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/models"
	"github.com/telecure/telecure-server/utils"
)

// StartCronJobs initializes and starts the cron scheduler for consultation reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for consultations in the next hour
	_, err := c.AddFunc("* * * * *", sendConsultationReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for consultation reminders")
}

// sendConsultationReminders checks for upcoming consultations and sends reminders
func sendConsultationReminders() {
	var appointments []models.Appointment
	now := time.Now()
	// Look for consultations starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("Patient").Preload("Doctor").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.StatusConfirmed, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := fmt.Sprintf("Reminder: Consultation with Dr. %s", appointment.Doctor.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your consultation scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Start Time:</strong> %s %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Please be online on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>The Telecure Team</p>
	`, appointment.Patient.Name, appointment.Doctor.Name,
		appointment.StartTime.Format("2006-01-02"), appointment.TimeLabel,
		appointment.Status)

	return utils.SendEmail(appointment.Patient.Email, subject, body)
}
