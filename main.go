package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/telecure/telecure-server/cron"
	"github.com/telecure/telecure-server/db"
	"github.com/telecure/telecure-server/redis"
	"github.com/telecure/telecure-server/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World!")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupPrescriptionRoutes(app)

	app.Listen(":8000")
	fmt.Println("Server started on port 8000")
}
