package models

import (
	"gorm.io/gorm"
)

type BedStatus string

const (
	BedAvailable BedStatus = "available"
	BedOccupied  BedStatus = "occupied"
	BedCleaning  BedStatus = "cleaning"
)

// IsValid reports whether s is one of the known bed statuses.
func (s BedStatus) IsValid() bool {
	switch s {
	case BedAvailable, BedOccupied, BedCleaning:
		return true
	}
	return false
}

type Bed struct {
	gorm.Model
	Ward   string    `json:"ward"`
	Number string    `json:"number"`
	Status BedStatus `json:"status" gorm:"default:available"`
}
