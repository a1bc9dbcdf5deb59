package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale records a vehicle sold to a client by an employee of a garage.
// Referenced vehicle/client/employee rows restrict deletion so sale history
// never dangles; sales themselves have no delete path.
type Sale struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GarageID   uuid.UUID `gorm:"type:uuid;not null;index" json:"garage_id"`
	VehicleID  uuid.UUID `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	SalePrice  float64   `gorm:"type:decimal(12,2);not null" json:"sale_price"`
	SaleDate   time.Time `gorm:"not null" json:"sale_date"`
	Notes      string    `gorm:"size:2000" json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Garage   Garage  `gorm:"foreignKey:GarageID;constraint:OnDelete:CASCADE" json:"-"`
	Vehicle  Vehicle `gorm:"foreignKey:VehicleID;constraint:OnDelete:RESTRICT" json:"-"`
	Client   Client  `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT" json:"-"`
	Employee Profile `gorm:"foreignKey:EmployeeID;constraint:OnDelete:RESTRICT" json:"-"`
}
