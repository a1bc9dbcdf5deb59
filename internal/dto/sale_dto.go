package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSaleRequest struct {
	GarageID  *uuid.UUID `json:"garage_id"`
	VehicleID uuid.UUID  `json:"vehicle_id"`
	ClientID  uuid.UUID  `json:"client_id"`
	SalePrice float64    `json:"sale_price"`
	SaleDate  *time.Time `json:"sale_date"`
	Notes     string     `json:"notes"`
}

type UpdateSaleRequest struct {
	SalePrice *float64   `json:"sale_price"`
	SaleDate  *time.Time `json:"sale_date"`
	Notes     *string    `json:"notes"`
}

type SaleResponse struct {
	ID         uuid.UUID `json:"id"`
	GarageID   uuid.UUID `json:"garage_id"`
	VehicleID  uuid.UUID `json:"vehicle_id"`
	ClientID   uuid.UUID `json:"client_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	SalePrice  float64   `json:"sale_price"`
	SaleDate   time.Time `json:"sale_date"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  string    `json:"updated_at"`
}

type SaleListResponse struct {
	Sales      []SaleResponse `json:"sales"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
