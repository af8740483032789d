package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/hospital-app/controllers"
	"github.com/meinhoongagan/hospital-app/middleware"
	"github.com/meinhoongagan/hospital-app/models"
)

// SetupAdminRoutes configures admin-only routes
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))
	admin.Post("/approve_doctor/:id", controllers.ApproveDoctor)
}
