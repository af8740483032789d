package controllers

import (
	"os"
	"strings"
	"time"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/meinhoongagan/hospital-app/db"
	"github.com/meinhoongagan/hospital-app/models"
	"github.com/meinhoongagan/hospital-app/utils"
	"golang.org/x/crypto/bcrypt"
)

// Register handles user registration
func Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		FullName string      `json:"full_name"`
		Email    *string     `json:"email"`
		Contact  *string     `json:"contact"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}

	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Validate input
	if input.FullName == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}
	if (input.Email == nil || *input.Email == "") && (input.Contact == nil || *input.Contact == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Either email or contact is required",
		})
	}

	// Default role is patient
	if input.Role == "" {
		input.Role = models.RolePatient
	}
	if !input.Role.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown role: " + string(input.Role),
		})
	}

	// Emails are stored lowercase so uniqueness is case-insensitive
	if input.Email != nil && *input.Email != "" {
		lowered := strings.ToLower(*input.Email)
		input.Email = &lowered

		var existingUser models.User
		if db.DB.Where("email = ?", lowered).First(&existingUser).RowsAffected > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "User with this email already exists",
			})
		}
	} else {
		input.Email = nil
	}

	if input.Contact != nil && *input.Contact != "" {
		var existingUser models.User
		if db.DB.Where("contact = ?", *input.Contact).First(&existingUser).RowsAffected > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "User with this contact already exists",
			})
		}
	} else {
		input.Contact = nil
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		FullName: input.FullName,
		Email:    input.Email,
		Contact:  input.Contact,
		Password: string(hashedPassword),
		Role:     input.Role,
		IsActive: true,
		// Patients are usable right away; doctors wait behind the approval gate
		IsApproved: input.Role == models.RolePatient,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user: " + err.Error(),
		})
	}

	// Remove password from response
	user.Password = ""

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Username may be an email or a contact number
	var user models.User
	var found int64
	if strings.Contains(input.Username, "@") {
		found = db.DB.Where("email = ?", strings.ToLower(input.Username)).First(&user).RowsAffected
	} else {
		found = db.DB.Where("contact = ?", input.Username).First(&user).RowsAffected
	}
	if found == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	// Compare passwords
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	// Doctors cannot log in until an admin approves them
	if user.Role == models.RoleDoctor && !user.IsApproved {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Doctor not yet approved",
		})
	}

	// Create access token
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(time.Hour * 24).Unix(), // 24 hour expiration
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secret := jwtSecret()
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	// Create refresh token with longer expiration
	refreshClaims := jwt.MapClaims{
		"id":   user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 day expiration
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate refresh token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user": fiber.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"contact":   user.Contact,
			"role":      user.Role,
		},
	})
}

// GetUserProfile returns the current user's profile
func GetUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var userProfile models.User
	if err := db.DB.First(&userProfile, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	// Don't send password
	userProfile.Password = ""

	return c.JSON(userProfile)
}

// Logout doesn't actually invalidate the token as JWTs are stateless
// For a more secure implementation, you'd need to use a token blacklist
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	secret := jwtSecret()
	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	// Create new access token
	claims := token.Claims.(jwt.MapClaims)
	newClaims := jwt.MapClaims{
		"id":   claims["id"],
		"role": claims["role"],
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
	}

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	tokenString, err := newToken.SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}

// ApproveDoctor flips the approval gate for a registered doctor. Admin only
// (enforced by route middleware).
func ApproveDoctor(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}
	if user.Role != models.RoleDoctor || user.IsApproved {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	user.IsApproved = true
	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to approve doctor",
		})
	}

	if user.Email != nil {
		utils.SendEmailAsync(*user.Email, "Account Approved",
			"<p>Dear "+user.FullName+",</p><p>Your doctor account has been approved. You can now log in.</p>")
	}

	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "Doctor approved",
		"user":    user,
	})
}

// jwtSecret resolves the signing key, falling back to the dev default used
// by the auth middleware.
func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return secret
}
