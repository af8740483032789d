package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/hospital-app/db"
	"github.com/meinhoongagan/hospital-app/models"
	"github.com/meinhoongagan/hospital-app/utils"
)

// GetAllDoctors returns every approved doctor. Unapproved registrations stay
// invisible until an admin lets them through.
func GetAllDoctors(c *fiber.Ctx) error {
	var doctors []models.User
	if err := db.DB.Where("role = ? AND is_approved = ?", models.RoleDoctor, true).Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}

	for i := range doctors {
		doctors[i].Password = ""
	}

	return c.JSON(doctors)
}

// GetDoctorProfile returns the practice details for a doctor by user ID
func GetDoctorProfile(c *fiber.Ctx) error {
	id := c.Params("id")
	var profile models.DoctorProfile
	if err := db.DB.Where("user_id = ?", id).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(profile)
}

// UpsertDoctorProfile creates or replaces the calling doctor's profile
func UpsertDoctorProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	type ProfileInput struct {
		Speciality string `json:"speciality"`
		Timings    string `json:"timings"`
		Location   string `json:"location"`
	}

	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	// Create if absent, else update in place
	var profile models.DoctorProfile
	if db.DB.Where("user_id = ?", userID).First(&profile).RowsAffected > 0 {
		profile.Speciality = input.Speciality
		profile.Timings = input.Timings
		profile.Location = input.Location
		if err := db.DB.Save(&profile).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update doctor profile",
				Error:   err.Error(),
			})
		}
		return c.JSON(profile)
	}

	profile = models.DoctorProfile{
		UserID:     userID,
		Speciality: input.Speciality,
		Timings:    input.Timings,
		Location:   input.Location,
	}
	if err := db.DB.Create(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create doctor profile",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}
