package models

import (
	"time"

	"github.com/google/uuid"
)

// Garage is the tenant unit. Every operational record (vehicles, clients,
// sales) belongs to exactly one garage.
type Garage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Address   string    `gorm:"size:500" json:"address"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
