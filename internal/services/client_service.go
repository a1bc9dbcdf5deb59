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
	ErrClientNotFound = errors.New("client not found")
	ErrClientHasSales = errors.New("client is referenced by sales")
)

type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

func (s *ClientService) List(caller authz.Caller, search string, page, limit int) (*dto.ClientListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := s.db.Model(&models.Client{}).Scopes(tenant.VisibleTo(caller))
	if search != "" {
		searchLower := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?)",
			searchLower, searchLower, searchLower)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var clients []models.Client
	if err := query.Order("last_name ASC, first_name ASC").Limit(limit).Offset(offset).Find(&clients).Error; err != nil {
		return nil, err
	}

	resp := &dto.ClientListResponse{
		Clients:    make([]dto.ClientResponse, len(clients)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	for i := range clients {
		resp.Clients[i] = mapClientToResponse(&clients[i])
	}
	return resp, nil
}

func (s *ClientService) Get(caller authz.Caller, id uuid.UUID) (*dto.ClientResponse, error) {
	var client models.Client
	if err := s.db.Scopes(tenant.VisibleTo(caller)).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	resp := mapClientToResponse(&client)
	return &resp, nil
}

// Create inserts a client into the target garage: the caller's own garage
// unless an explicit garage_id is supplied. Manager of the target garage or
// admin.
func (s *ClientService) Create(caller authz.Caller, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	garageID, err := resolveTargetGarage(caller, req.GarageID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(caller, authz.ActionInsert, authz.ResourceClient, authz.GarageTarget(garageID)) {
		return nil, ErrAccessDenied
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, ErrNameRequired
	}

	var garage models.Garage
	if err := s.db.First(&garage, "id = ?", garageID).Error; err != nil {
		return nil, ErrGarageNotFound
	}

	client := models.Client{
		ID:        uuid.New(),
		GarageID:  garageID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if err := s.db.Create(&client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	resp := mapClientToResponse(&client)
	return &resp, nil
}

func (s *ClientService) Update(caller authz.Caller, id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	var client models.Client
	if err := s.db.Scopes(tenant.VisibleTo(caller)).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if !authz.Can(caller, authz.ActionUpdate, authz.ResourceClient, authz.GarageTarget(client.GarageID)) {
		return nil, ErrAccessDenied
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	// Timestamp advances even when no field value changes.
	updates["updated_at"] = time.Now().UTC()

	if err := s.db.Model(&client).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.Get(caller, id)
}

// Delete removes a client. Denied while sales reference it.
func (s *ClientService) Delete(caller authz.Caller, id uuid.UUID) error {
	var client models.Client
	if err := s.db.Scopes(tenant.VisibleTo(caller)).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	if !authz.Can(caller, authz.ActionDelete, authz.ResourceClient, authz.GarageTarget(client.GarageID)) {
		return ErrAccessDenied
	}

	var saleCount int64
	if err := s.db.Model(&models.Sale{}).Where("client_id = ?", id).Count(&saleCount).Error; err != nil {
		return err
	}
	if saleCount > 0 {
		return ErrClientHasSales
	}

	return s.db.Delete(&client).Error
}

func mapClientToResponse(c *models.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:        c.ID,
		GarageID:  c.GarageID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
