package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/meinhoongagan/hospital-app/db"
	"github.com/meinhoongagan/hospital-app/models"
	"github.com/meinhoongagan/hospital-app/utils"
)

// GetAllMedicines returns the pharmacy inventory
func GetAllMedicines(c *fiber.Ctx) error {
	var medicines []models.Medicine
	if err := db.DB.Find(&medicines).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch medicines",
			Error:   err.Error(),
		})
	}
	return c.JSON(medicines)
}

// CreateMedicine adds a stock line. Admin only (enforced by route middleware).
func CreateMedicine(c *fiber.Ctx) error {
	medicine := new(models.Medicine)
	if err := c.BodyParser(medicine); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if medicine.Name == "" || medicine.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required and quantity cannot be negative",
		})
	}

	if err := db.DB.Create(medicine).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create medicine",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(medicine)
}

// PurchaseMedicine decrements stock for a purchase. The decrement is a
// single conditional UPDATE so two concurrent purchases can never drive the
// quantity negative.
func PurchaseMedicine(c *fiber.Ctx) error {
	id := c.Params("id")

	type PurchaseInput struct {
		PatientID uint `json:"patient_id"`
		Quantity  int  `json:"quantity"`
	}
	input := &PurchaseInput{Quantity: 1}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to parse request body",
				Error:   err.Error(),
			})
		}
	}
	if input.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Quantity must be positive",
		})
	}

	var medicine models.Medicine
	if err := db.DB.First(&medicine, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Medicine not found",
			Error:   err.Error(),
		})
	}

	res := db.DB.Model(&models.Medicine{}).
		Where("id = ? AND quantity >= ?", medicine.ID, input.Quantity).
		Update("quantity", gorm.Expr("quantity - ?", input.Quantity))
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to purchase medicine",
			Error:   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Insufficient stock",
		})
	}

	// Re-read for the decremented quantity
	if err := db.DB.First(&medicine, medicine.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch medicine",
			Error:   err.Error(),
		})
	}
	return c.JSON(medicine)
}

// RestockMedicine adds stock to an existing line. Admin only (enforced by
// route middleware).
func RestockMedicine(c *fiber.Ctx) error {
	id := c.Params("id")

	type RestockInput struct {
		Quantity int `json:"quantity"`
	}
	input := new(RestockInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Quantity must be positive",
		})
	}

	var medicine models.Medicine
	if err := db.DB.First(&medicine, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Medicine not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&medicine).
		Update("quantity", gorm.Expr("quantity + ?", input.Quantity)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to restock medicine",
			Error:   err.Error(),
		})
	}

	db.DB.First(&medicine, medicine.ID)
	return c.JSON(medicine)
}
