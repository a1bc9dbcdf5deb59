package models

import (
	"time"

	"github.com/google/uuid"
)

// Client belongs to exactly one garage.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GarageID  uuid.UUID `gorm:"type:uuid;not null;index" json:"garage_id"`
	FirstName string    `gorm:"not null;size:100" json:"first_name"`
	LastName  string    `gorm:"not null;size:100" json:"last_name"`
	Email     string    `gorm:"size:255" json:"email"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Address   string    `gorm:"size:500" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Garage Garage `gorm:"foreignKey:GarageID;constraint:OnDelete:CASCADE" json:"-"`
}
