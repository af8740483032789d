package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/meinhoongagan/hospital-app/cron"
	"github.com/meinhoongagan/hospital-app/db"
	"github.com/meinhoongagan/hospital-app/redis"
	"github.com/meinhoongagan/hospital-app/routes"
)

func main() {
	app := fiber.New()
	db.Migrate()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Smart Hospital Backend Running"})
	})
	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupHospitalRoutes(app)
	routes.SetupAdminRoutes(app)

	app.Listen(":8000")
	fmt.Println("Server started on port 8000")
}
