package db

import (
	"fmt"
	"log"
	"os"

	"github.com/meinhoongagan/hospital-app/models"
	"golang.org/x/crypto/bcrypt"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.DoctorProfile{},
		&models.Appointment{},
		&models.QueueEntry{},
		&models.Bed{},
		&models.Medicine{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedAdminUser()

	fmt.Println("✅ Migrations applied successfully!")
}

// seedAdminUser creates the bootstrap admin account from ADMIN_EMAIL /
// ADMIN_PASSWORD. Doctor approval requires an admin, so one must exist
// before any doctor can log in.
func seedAdminUser() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Failed to hash admin password: ", err)
		return
	}

	admin := models.User{
		FullName:   "Administrator",
		Email:      &email,
		Password:   string(hashed),
		Role:       models.RoleAdmin,
		IsActive:   true,
		IsApproved: true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Println("Failed to seed admin user: ", err)
		return
	}
	log.Println("✅ Seeded bootstrap admin user")
}
