package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/hospital-app/controllers"
	"github.com/meinhoongagan/hospital-app/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Post("/", controllers.BookAppointment)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Post("/:id/cancel", middleware.Protected(), controllers.CancelAppointment)
	appointment.Post("/:id/complete", middleware.Protected(), controllers.CompleteAppointment)

	app.Get("/queue/:doctorId", controllers.GetQueueForDoctor)
}
