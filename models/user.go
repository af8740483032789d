package models

import (
	"time"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// User is a patient, doctor or admin. Email and contact are both optional
// but unique; at least one must be present so the user can log in.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FullName   string    `json:"full_name"`
	Email      *string   `json:"email,omitempty" gorm:"unique"`
	Contact    *string   `json:"contact,omitempty" gorm:"unique"`
	Password   string    `json:"password,omitempty"`
	Role       Role      `json:"role" gorm:"default:patient"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	IsApproved bool      `json:"is_approved" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
