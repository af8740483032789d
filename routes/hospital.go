package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/hospital-app/controllers"
	"github.com/meinhoongagan/hospital-app/middleware"
	"github.com/meinhoongagan/hospital-app/models"
)

// SetupHospitalRoutes configures bed and medicine inventory routes
func SetupHospitalRoutes(app *fiber.App) {
	bed := app.Group("/beds")
	bed.Get("/", controllers.GetAllBeds)
	bed.Post("/", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.CreateBed)
	bed.Post("/:id/update", middleware.Protected(), middleware.RequireRole(models.RoleDoctor, models.RoleAdmin), controllers.UpdateBedStatus)

	medicine := app.Group("/medicines")
	medicine.Get("/", controllers.GetAllMedicines)
	medicine.Post("/", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.CreateMedicine)
	medicine.Post("/:id/purchase", controllers.PurchaseMedicine)
	medicine.Post("/:id/restock", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.RestockMedicine)
}
