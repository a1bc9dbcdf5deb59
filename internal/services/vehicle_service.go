package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/authz"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/models"
	"github.com/ilywak/autosales-hub/internal/tenant"
	"gorm.io/gorm"
)

var (
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrInvalidFuelType  = errors.New("invalid fuel type")
	ErrInvalidCondition = errors.New("invalid condition")
	ErrInvalidYear      = errors.New("year is out of range")
	ErrInvalidPrice     = errors.New("price must be positive")
	ErrVehicleHasSales  = errors.New("vehicle is referenced by sales")
)

// VehicleFilter narrows vehicle listings.
type VehicleFilter struct {
	GarageID  *uuid.UUID
	FuelType  string
	Condition string
	Available *bool
	Search    string
}

type VehicleService struct {
	db *gorm.DB
}

func NewVehicleService(db *gorm.DB) *VehicleService {
	return &VehicleService{db: db}
}

// List returns vehicles visible to the caller: the caller's garage, or all
// garages for admin.
func (s *VehicleService) List(caller authz.Caller, filter VehicleFilter, page, limit int) (*dto.VehicleListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := s.db.Model(&models.Vehicle{}).Scopes(tenant.VisibleTo(caller))
	if filter.GarageID != nil {
		query = query.Where("garage_id = ?", *filter.GarageID)
	}
	if filter.FuelType != "" {
		query = query.Where("fuel_type = ?", filter.FuelType)
	}
	if filter.Condition != "" {
		query = query.Where("condition = ?", filter.Condition)
	}
	if filter.Available != nil {
		query = query.Where("is_available = ?", *filter.Available)
	}
	if filter.Search != "" {
		searchLower := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(make) LIKE ? OR LOWER(model) LIKE ?)", searchLower, searchLower)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var vehicles []models.Vehicle
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&vehicles).Error; err != nil {
		return nil, err
	}

	resp := &dto.VehicleListResponse{
		Vehicles:   make([]dto.VehicleResponse, len(vehicles)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	for i := range vehicles {
		resp.Vehicles[i] = mapVehicleToResponse(&vehicles[i])
	}
	return resp, nil
}

func (s *VehicleService) Get(caller authz.Caller, id uuid.UUID) (*dto.VehicleResponse, error) {
	var vehicle models.Vehicle
	if err := s.db.Scopes(tenant.VisibleTo(caller)).First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	resp := mapVehicleToResponse(&vehicle)
	return &resp, nil
}

// Create inserts a vehicle into the target garage: the caller's own garage
// unless an explicit garage_id is supplied. Manager of the target garage or
// admin.
func (s *VehicleService) Create(caller authz.Caller, req *dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	garageID, err := resolveTargetGarage(caller, req.GarageID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(caller, authz.ActionInsert, authz.ResourceVehicle, authz.GarageTarget(garageID)) {
		return nil, ErrAccessDenied
	}
	if err := validateVehicleInput(req.Year, req.Price, req.FuelType, req.Condition); err != nil {
		return nil, err
	}

	var garage models.Garage
	if err := s.db.First(&garage, "id = ?", garageID).Error; err != nil {
		return nil, ErrGarageNotFound
	}

	vehicle := models.Vehicle{
		ID:          uuid.New(),
		GarageID:    garageID,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Price:       req.Price,
		Mileage:     req.Mileage,
		FuelType:    req.FuelType,
		Condition:   req.Condition,
		IsAvailable: true,
		Color:       req.Color,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.db.Create(&vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	resp := mapVehicleToResponse(&vehicle)
	return &resp, nil
}

func (s *VehicleService) Update(caller authz.Caller, id uuid.UUID, req *dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	var vehicle models.Vehicle
	if err := s.db.Scopes(tenant.VisibleTo(caller)).First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if !authz.Can(caller, authz.ActionUpdate, authz.ResourceVehicle, authz.GarageTarget(vehicle.GarageID)) {
		return nil, ErrAccessDenied
	}

	updates := map[string]interface{}{}
	if req.Make != nil {
		updates["make"] = *req.Make
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.Year != nil {
		if *req.Year < 1900 || *req.Year > time.Now().Year()+1 {
			return nil, ErrInvalidYear
		}
		updates["year"] = *req.Year
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		updates["price"] = *req.Price
	}
	if req.Mileage != nil {
		updates["mileage"] = *req.Mileage
	}
	if req.FuelType != nil {
		if !models.ValidFuelType(*req.FuelType) {
			return nil, ErrInvalidFuelType
		}
		updates["fuel_type"] = *req.FuelType
	}
	if req.Condition != nil {
		if !models.ValidCondition(*req.Condition) {
			return nil, ErrInvalidCondition
		}
		updates["condition"] = *req.Condition
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	// Timestamp advances even when no field value changes.
	updates["updated_at"] = time.Now().UTC()

	if err := s.db.Model(&vehicle).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.Get(caller, id)
}

// Delete removes a vehicle. Denied while sales reference it: sale history
// must never dangle.
func (s *VehicleService) Delete(caller authz.Caller, id uuid.UUID) error {
	var vehicle models.Vehicle
	if err := s.db.Scopes(tenant.VisibleTo(caller)).First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	if !authz.Can(caller, authz.ActionDelete, authz.ResourceVehicle, authz.GarageTarget(vehicle.GarageID)) {
		return ErrAccessDenied
	}

	var saleCount int64
	if err := s.db.Model(&models.Sale{}).Where("vehicle_id = ?", id).Count(&saleCount).Error; err != nil {
		return err
	}
	if saleCount > 0 {
		return ErrVehicleHasSales
	}

	return s.db.Delete(&vehicle).Error
}

func resolveTargetGarage(caller authz.Caller, requested *uuid.UUID) (uuid.UUID, error) {
	if requested != nil {
		return *requested, nil
	}
	if caller.GarageID != nil {
		return *caller.GarageID, nil
	}
	return uuid.Nil, ErrAccessDenied
}

func validateVehicleInput(year int, price float64, fuelType, condition string) error {
	if year < 1900 || year > time.Now().Year()+1 {
		return ErrInvalidYear
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	if !models.ValidFuelType(fuelType) {
		return ErrInvalidFuelType
	}
	if !models.ValidCondition(condition) {
		return ErrInvalidCondition
	}
	return nil
}

func mapVehicleToResponse(v *models.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:          v.ID,
		GarageID:    v.GarageID,
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		Price:       v.Price,
		Mileage:     v.Mileage,
		FuelType:    v.FuelType,
		Condition:   v.Condition,
		IsAvailable: v.IsAvailable,
		Color:       v.Color,
		Description: v.Description,
		ImageURL:    v.ImageURL,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.Format(time.RFC3339),
	}
}
