package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/hospital-app/db"
	"github.com/meinhoongagan/hospital-app/models"
	"github.com/meinhoongagan/hospital-app/utils"
)

// GetAllBeds returns every bed with its current status
func GetAllBeds(c *fiber.Ctx) error {
	var beds []models.Bed
	if err := db.DB.Find(&beds).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch beds",
			Error:   err.Error(),
		})
	}
	return c.JSON(beds)
}

// CreateBed registers a new bed. Admin only (enforced by route middleware).
func CreateBed(c *fiber.Ctx) error {
	bed := new(models.Bed)
	if err := c.BodyParser(bed); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if bed.Status == "" {
		bed.Status = models.BedAvailable
	}
	if !bed.Status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown bed status: " + string(bed.Status),
		})
	}

	if err := db.DB.Create(bed).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create bed",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(bed)
}

// UpdateBedStatus sets a bed's status. Doctors and admins only (enforced by
// route middleware).
func UpdateBedStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	type StatusInput struct {
		Status models.BedStatus `json:"status"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if !input.Status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown bed status: " + string(input.Status),
		})
	}

	var bed models.Bed
	if err := db.DB.First(&bed, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Bed not found",
			Error:   err.Error(),
		})
	}

	bed.Status = input.Status
	if err := db.DB.Save(&bed).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update bed",
			Error:   err.Error(),
		})
	}
	return c.JSON(bed)
}
