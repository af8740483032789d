package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/hospital-app/controllers"
	"github.com/meinhoongagan/hospital-app/middleware"
	"github.com/meinhoongagan/hospital-app/models"
)

// SetupDoctorRoutes configures the doctor directory routes
func SetupDoctorRoutes(app *fiber.App) {
	doctor := app.Group("/doctors")
	doctor.Get("/", controllers.GetAllDoctors)
	doctor.Get("/:id/profile", controllers.GetDoctorProfile)
	doctor.Post("/profile", middleware.Protected(), middleware.RequireRole(models.RoleDoctor), controllers.UpsertDoctorProfile)
}
