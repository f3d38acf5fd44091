package models

import "time"

// BuffetSettings is a singleton row (ID is always 1).
type BuffetSettings struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Price       float64   `gorm:"not null" json:"price"`
	Hours       string    `gorm:"size:50;not null" json:"hours"` // e.g. "12:00 PM - 3:00 PM"
	Description string    `gorm:"size:200;not null" json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	UpdatedAt   time.Time `json:"updated_at"`
}
