package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the per-identity record. Exactly one per user (unique index on
// user_id). GarageID determines the tenant scope of all the identity's
// garage-scoped operations; nil means unassigned.
type Profile struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FirstName string     `gorm:"not null;size:100" json:"first_name"`
	LastName  string     `gorm:"not null;size:100" json:"last_name"`
	Email     string     `gorm:"size:255" json:"email"`
	Phone     string     `gorm:"size:50" json:"phone"`
	GarageID  *uuid.UUID `gorm:"type:uuid;index" json:"garage_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	User   User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Garage *Garage `gorm:"foreignKey:GarageID;constraint:OnDelete:SET NULL" json:"-"`
}
