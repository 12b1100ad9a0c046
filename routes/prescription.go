package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telecure/telecure-server/controllers/prescription"
	"github.com/telecure/telecure-server/middleware"
)

// SetupPrescriptionRoutes configures all prescription related routes
func SetupPrescriptionRoutes(app *fiber.App) {
	rx := app.Group("/prescriptions", middleware.Protected())

	rx.Post("/", middleware.RequireRole(middleware.RoleDoctor), prescription.Issue)
	rx.Get("/", prescription.List)
	rx.Get("/:id", prescription.Get)
	rx.Post("/:id/image", prescription.UploadImage)
	rx.Post("/:id/analyze", prescription.Analyze)
	rx.Post("/:id/token", middleware.RequireRole(middleware.RolePatient), prescription.RecordToken)
}
