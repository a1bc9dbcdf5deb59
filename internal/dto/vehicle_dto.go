package dto

import "github.com/google/uuid"

type CreateVehicleRequest struct {
	GarageID    *uuid.UUID `json:"garage_id"`
	Make        string     `json:"make"`
	Model       string     `json:"model"`
	Year        int        `json:"year"`
	Price       float64    `json:"price"`
	Mileage     int        `json:"mileage"`
	FuelType    string     `json:"fuel_type"`
	Condition   string     `json:"condition"`
	Color       string     `json:"color"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
}

type UpdateVehicleRequest struct {
	Make        *string  `json:"make"`
	Model       *string  `json:"model"`
	Year        *int     `json:"year"`
	Price       *float64 `json:"price"`
	Mileage     *int     `json:"mileage"`
	FuelType    *string  `json:"fuel_type"`
	Condition   *string  `json:"condition"`
	IsAvailable *bool    `json:"is_available"`
	Color       *string  `json:"color"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}

type VehicleResponse struct {
	ID          uuid.UUID `json:"id"`
	GarageID    uuid.UUID `json:"garage_id"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	Price       float64   `json:"price"`
	Mileage     int       `json:"mileage"`
	FuelType    string    `json:"fuel_type"`
	Condition   string    `json:"condition"`
	IsAvailable bool      `json:"is_available"`
	Color       string    `json:"color"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

type VehicleListResponse struct {
	Vehicles   []VehicleResponse `json:"vehicles"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
