package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telecure/telecure-server/controllers/doctor"
	"github.com/telecure/telecure-server/middleware"
)

// SetupDoctorRoutes configures all doctor related routes
func SetupDoctorRoutes(app *fiber.App) {
	doctors := app.Group("/doctors")

	// Public discovery routes consumed by the booking flow
	doctors.Get("/", doctor.GetVerifiedDoctors)
	doctors.Post("/search", doctor.SearchDoctors)
	doctors.Get("/specialty/:specialty", doctor.GetDoctorsBySpecialty)
	doctors.Get("/:id", doctor.GetProfile)
	doctors.Get("/:id/availability", doctor.GetAvailability)
	doctors.Get("/:id/availability/dates", doctor.GetCandidateDates)
	doctors.Get("/:id/availability/slots", doctor.GetTimeSlots)
	doctors.Get("/:id/reviews", doctor.GetReviews)

	// Doctor-only profile management
	doctors.Patch("/profile", middleware.Protected(), middleware.RequireRole(middleware.RoleDoctor), doctor.UpdateProfile)
	doctors.Patch("/password", middleware.Protected(), middleware.RequireRole(middleware.RoleDoctor), doctor.UpdatePassword)
	doctors.Post("/profile/image", middleware.Protected(), middleware.RequireRole(middleware.RoleDoctor), doctor.UploadProfileImage)
	doctors.Put("/availability", middleware.Protected(), middleware.RequireRole(middleware.RoleDoctor), doctor.UpdateAvailability)

	// Doctor-only appointment management
	doctors.Get("/appointments/upcoming", middleware.Protected(), middleware.RequireRole(middleware.RoleDoctor), doctor.GetUpcomingAppointments)
	doctors.Get("/appointments/history", middleware.Protected(), middleware.RequireRole(middleware.RoleDoctor), doctor.GetAppointmentHistory)
	doctors.Patch("/appointments/:id/status", middleware.Protected(), middleware.RequireRole(middleware.RoleDoctor), doctor.UpdateAppointmentStatus)
	doctors.Patch("/appointments/:id/reschedule", middleware.Protected(), middleware.RequireRole(middleware.RoleDoctor), doctor.RescheduleAppointment)

	// Chat roster
	doctors.Get("/chat/patients", middleware.Protected(), middleware.RequireRole(middleware.RoleDoctor), doctor.GetChatPatients)
}
