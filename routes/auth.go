package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telecure/telecure-server/controllers"
	"github.com/telecure/telecure-server/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/doctor/register", controllers.RegisterDoctor)
	auth.Post("/doctor/login", controllers.LoginDoctor)
	auth.Post("/patient/register", controllers.RegisterPatient)
	auth.Post("/patient/login", controllers.LoginPatient)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.Me)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
