package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/authz"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/models"
	"github.com/ilywak/autosales-hub/internal/tenant"
	"gorm.io/gorm"
)

var (
	ErrSaleNotFound     = errors.New("sale not found")
	ErrInvalidSalePrice = errors.New("sale price must be positive")
)

type SaleService struct {
	db *gorm.DB
}

func NewSaleService(db *gorm.DB) *SaleService {
	return &SaleService{db: db}
}

func (s *SaleService) List(caller authz.Caller, page, limit int) (*dto.SaleListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := s.db.Model(&models.Sale{}).Scopes(tenant.VisibleTo(caller))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var sales []models.Sale
	if err := query.Order("sale_date DESC").Limit(limit).Offset(offset).Find(&sales).Error; err != nil {
		return nil, err
	}

	resp := &dto.SaleListResponse{
		Sales:      make([]dto.SaleResponse, len(sales)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	for i := range sales {
		resp.Sales[i] = mapSaleToResponse(&sales[i])
	}
	return resp, nil
}

func (s *SaleService) Get(caller authz.Caller, id uuid.UUID) (*dto.SaleResponse, error) {
	var sale models.Sale
	if err := s.db.Scopes(tenant.VisibleTo(caller)).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	resp := mapSaleToResponse(&sale)
	return &resp, nil
}

// Create records a sale by the caller. Any garage member may insert, but
// only into their own garage: the decision function denies a mismatched
// garage_id for everyone, admin included. The selling employee is always
// the caller's own profile. Referenced vehicle and client must exist; their
// garage fields are not cross-checked against the sale's garage.
func (s *SaleService) Create(caller authz.Caller, req *dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	garageID := req.GarageID
	if garageID == nil {
		garageID = caller.GarageID
	}
	target := authz.Target{GarageID: garageID}
	if !authz.Can(caller, authz.ActionInsert, authz.ResourceSale, target) {
		return nil, ErrAccessDenied
	}
	if req.SalePrice <= 0 {
		return nil, ErrInvalidSalePrice
	}

	var employee models.Profile
	if err := s.db.Where("user_id = ?", caller.UserID).First(&employee).Error; err != nil {
		return nil, ErrProfileNotFound
	}

	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, "id = ?", req.VehicleID).Error; err != nil {
		return nil, ErrVehicleNotFound
	}
	var client models.Client
	if err := s.db.First(&client, "id = ?", req.ClientID).Error; err != nil {
		return nil, ErrClientNotFound
	}

	saleDate := time.Now().UTC()
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}

	sale := models.Sale{
		ID:         uuid.New(),
		GarageID:   *garageID,
		VehicleID:  req.VehicleID,
		ClientID:   req.ClientID,
		EmployeeID: employee.ID,
		SalePrice:  req.SalePrice,
		SaleDate:   saleDate,
		Notes:      req.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		// A sold vehicle leaves the available inventory.
		return tx.Model(&vehicle).Updates(map[string]interface{}{
			"is_available": false,
			"updated_at":   time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	resp := mapSaleToResponse(&sale)
	return &resp, nil
}

// Update amends a sale's price, date, or notes. Manager of the sale's
// garage or admin. There is no delete counterpart: sales are permanent.
func (s *SaleService) Update(caller authz.Caller, id uuid.UUID, req *dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	var sale models.Sale
	if err := s.db.Scopes(tenant.VisibleTo(caller)).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	if !authz.Can(caller, authz.ActionUpdate, authz.ResourceSale, authz.GarageTarget(sale.GarageID)) {
		return nil, ErrAccessDenied
	}

	updates := map[string]interface{}{}
	if req.SalePrice != nil {
		if *req.SalePrice <= 0 {
			return nil, ErrInvalidSalePrice
		}
		updates["sale_price"] = *req.SalePrice
	}
	if req.SaleDate != nil {
		updates["sale_date"] = *req.SaleDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	// Timestamp advances even when no field value changes.
	updates["updated_at"] = time.Now().UTC()

	if err := s.db.Model(&sale).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.Get(caller, id)
}

func mapSaleToResponse(sale *models.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:         sale.ID,
		GarageID:   sale.GarageID,
		VehicleID:  sale.VehicleID,
		ClientID:   sale.ClientID,
		EmployeeID: sale.EmployeeID,
		SalePrice:  sale.SalePrice,
		SaleDate:   sale.SaleDate,
		Notes:      sale.Notes,
		CreatedAt:  sale.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  sale.UpdatedAt.Format(time.RFC3339),
	}
}
