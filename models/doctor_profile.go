package models

import (
	"gorm.io/gorm"
)

// DoctorProfile holds the public practice details of a doctor. At most one
// profile exists per user; writes go through an upsert keyed by UserID.
type DoctorProfile struct {
	gorm.Model
	User       User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	UserID     uint   `json:"user_id" gorm:"unique"`
	Speciality string `json:"speciality"`
	Timings    string `json:"timings"` // simple CSV or text
	Location   string `json:"location"`
}
