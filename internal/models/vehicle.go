package models

import (
	"time"

	"github.com/google/uuid"
)

// Fuel types accepted for vehicles.
const (
	FuelGasoline = "gasoline"
	FuelDiesel   = "diesel"
	FuelElectric = "electric"
	FuelHybrid   = "hybrid"
	FuelLPG      = "lpg"
)

// Vehicle conditions.
const (
	ConditionNew           = "new"
	ConditionUsed          = "used"
	ConditionReconditioned = "reconditioned"
)

// ValidFuelType reports whether s is one of the accepted fuel types.
func ValidFuelType(s string) bool {
	switch s {
	case FuelGasoline, FuelDiesel, FuelElectric, FuelHybrid, FuelLPG:
		return true
	}
	return false
}

// ValidCondition reports whether s is one of the accepted conditions.
func ValidCondition(s string) bool {
	switch s {
	case ConditionNew, ConditionUsed, ConditionReconditioned:
		return true
	}
	return false
}

// Vehicle belongs to exactly one garage.
type Vehicle struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GarageID    uuid.UUID `gorm:"type:uuid;not null;index" json:"garage_id"`
	Make        string    `gorm:"not null;size:100" json:"make"`
	Model       string    `gorm:"not null;size:100" json:"model"`
	Year        int       `gorm:"not null" json:"year"`
	Price       float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	Mileage     int       `gorm:"default:0" json:"mileage"`
	FuelType    string    `gorm:"not null;size:20" json:"fuel_type"`
	Condition   string    `gorm:"not null;size:20" json:"condition"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	Color       string    `gorm:"size:50" json:"color"`
	Description string    `gorm:"size:2000" json:"description,omitempty"`
	ImageURL    string    `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Garage Garage `gorm:"foreignKey:GarageID;constraint:OnDelete:CASCADE" json:"-"`
}
