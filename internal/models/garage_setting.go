package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GarageSetting stores per-garage configuration values (opening hours,
// invoice footer, currency, feature toggles). Admin-managed; garage members
// read the settings of their own garage.
type GarageSetting struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GarageID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_garage_settings_garage_key,priority:1" json:"garage_id"`
	Key       string         `gorm:"size:100;not null;uniqueIndex:idx_garage_settings_garage_key,priority:2" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Garage Garage `gorm:"foreignKey:GarageID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate ensures UUID is set before creation
func (s *GarageSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (GarageSetting) TableName() string {
	return "garage_settings"
}
