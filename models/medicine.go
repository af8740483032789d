package models

import (
	"gorm.io/gorm"
)

// Medicine is a pharmacy stock line. Quantity never goes negative: purchases
// run as a conditional decrement checked against stock on hand. Threshold is
// the low-stock watermark the alert job reports on.
type Medicine struct {
	gorm.Model
	Name      string `json:"name"`
	Quantity  int    `json:"quantity" gorm:"default:0"`
	Threshold int    `json:"threshold" gorm:"default:1"`
}
