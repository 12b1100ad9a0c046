package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telecure/telecure-server/controllers/patient"
	"github.com/telecure/telecure-server/middleware"
)

// SetupPatientRoutes configures all patient related routes
func SetupPatientRoutes(app *fiber.App) {
	patients := app.Group("/patients", middleware.Protected(), middleware.RequireRole(middleware.RolePatient))

	patients.Get("/profile", patient.GetProfile)
	patients.Patch("/profile", patient.UpdateProfile)
	patients.Post("/profile/picture", patient.UploadProfilePicture)
	patients.Post("/certificates", patient.UploadCertificate)
	patients.Delete("/certificates/:id", patient.DeleteCertificate)

	patients.Post("/book/appointment", patient.BookAppointment)
	patients.Get("/appointments", patient.GetMyAppointments)
	patients.Get("/appointments/:id", patient.GetAppointment)
	patients.Patch("/appointments/:id/cancel", patient.CancelAppointment)

	patients.Post("/reviews", patient.CreateReview)
}
