package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/authz"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrAccessDenied    = errors.New("access denied")
	ErrGarageNotFound  = errors.New("garage not found")
	ErrSettingNotFound = errors.New("setting not found")
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidJSON     = errors.New("value must be valid JSON")
)

type GarageService struct {
	db *gorm.DB
}

func NewGarageService(db *gorm.DB) *GarageService {
	return &GarageService{db: db}
}

// List returns all garages for admin, or the single garage the caller's
// profile is assigned to. Unassigned non-admin callers see nothing.
func (s *GarageService) List(caller authz.Caller) ([]dto.GarageResponse, error) {
	var garages []models.Garage
	query := s.db.Order("name ASC")
	if !caller.IsAdmin() {
		if caller.GarageID == nil {
			return []dto.GarageResponse{}, nil
		}
		query = query.Where("id = ?", *caller.GarageID)
	}
	if err := query.Find(&garages).Error; err != nil {
		return nil, err
	}

	resp := make([]dto.GarageResponse, len(garages))
	for i := range garages {
		resp[i] = mapGarageToResponse(&garages[i])
	}
	return resp, nil
}

func (s *GarageService) Get(caller authz.Caller, id uuid.UUID) (*dto.GarageResponse, error) {
	// A garage the caller may not read is indistinguishable from a missing one.
	if !authz.Can(caller, authz.ActionSelect, authz.ResourceGarage, authz.GarageTarget(id)) {
		return nil, ErrGarageNotFound
	}

	var garage models.Garage
	if err := s.db.First(&garage, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGarageNotFound
		}
		return nil, err
	}
	resp := mapGarageToResponse(&garage)
	return &resp, nil
}

func (s *GarageService) Create(caller authz.Caller, req *dto.CreateGarageRequest) (*dto.GarageResponse, error) {
	if !authz.Can(caller, authz.ActionInsert, authz.ResourceGarage, authz.Target{}) {
		return nil, ErrAccessDenied
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	garage := models.Garage{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := s.db.Create(&garage).Error; err != nil {
		return nil, fmt.Errorf("failed to create garage: %w", err)
	}

	resp := mapGarageToResponse(&garage)
	return &resp, nil
}

func (s *GarageService) Update(caller authz.Caller, id uuid.UUID, req *dto.UpdateGarageRequest) (*dto.GarageResponse, error) {
	if !authz.Can(caller, authz.ActionUpdate, authz.ResourceGarage, authz.GarageTarget(id)) {
		return nil, ErrAccessDenied
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = trimmed
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	// Every successful update advances the timestamp, even a no-op one.
	updates["updated_at"] = time.Now().UTC()

	result := s.db.Model(&models.Garage{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrGarageNotFound
	}

	return s.Get(caller, id)
}

// Delete removes a garage and cascades over its operational records: sales,
// vehicles, clients, and settings are deleted; profiles referencing the
// garage keep their rows but lose the assignment.
func (s *GarageService) Delete(caller authz.Caller, id uuid.UUID) error {
	if !authz.Can(caller, authz.ActionDelete, authz.ResourceGarage, authz.GarageTarget(id)) {
		return ErrAccessDenied
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("garage_id = ?", id).Delete(&models.Sale{}).Error; err != nil {
			return err
		}
		if err := tx.Where("garage_id = ?", id).Delete(&models.Vehicle{}).Error; err != nil {
			return err
		}
		if err := tx.Where("garage_id = ?", id).Delete(&models.Client{}).Error; err != nil {
			return err
		}
		if err := tx.Where("garage_id = ?", id).Delete(&models.GarageSetting{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Profile{}).Where("garage_id = ?", id).
			Updates(map[string]interface{}{"garage_id": nil, "updated_at": time.Now().UTC()}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Garage{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGarageNotFound
		}
		return nil
	})
}

// --- Settings ---

func (s *GarageService) ListSettings(caller authz.Caller, garageID uuid.UUID) ([]dto.GarageSettingResponse, error) {
	if !authz.Can(caller, authz.ActionSelect, authz.ResourceGarageSetting, authz.GarageTarget(garageID)) {
		return nil, ErrGarageNotFound
	}

	var settings []models.GarageSetting
	if err := s.db.Where("garage_id = ?", garageID).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}

	resp := make([]dto.GarageSettingResponse, len(settings))
	for i, setting := range settings {
		resp[i] = dto.GarageSettingResponse{
			Key:       setting.Key,
			Value:     json.RawMessage(setting.Value),
			UpdatedAt: setting.UpdatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *GarageService) SetSetting(caller authz.Caller, garageID uuid.UUID, key string, value json.RawMessage) error {
	if !authz.Can(caller, authz.ActionUpdate, authz.ResourceGarageSetting, authz.GarageTarget(garageID)) {
		return ErrAccessDenied
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("key is required")
	}
	if len(value) == 0 || !json.Valid(value) {
		return ErrInvalidJSON
	}

	var garage models.Garage
	if err := s.db.First(&garage, "id = ?", garageID).Error; err != nil {
		return ErrGarageNotFound
	}

	var existing models.GarageSetting
	err := s.db.Where("garage_id = ? AND key = ?", garageID, key).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting := models.GarageSetting{
			GarageID: garageID,
			Key:      key,
			Value:    datatypes.JSON(value),
		}
		return s.db.Create(&setting).Error
	}
	if err != nil {
		return err
	}

	return s.db.Model(&existing).Updates(map[string]interface{}{
		"value":      datatypes.JSON(value),
		"updated_at": time.Now().UTC(),
	}).Error
}

func (s *GarageService) DeleteSetting(caller authz.Caller, garageID uuid.UUID, key string) error {
	if !authz.Can(caller, authz.ActionDelete, authz.ResourceGarageSetting, authz.GarageTarget(garageID)) {
		return ErrAccessDenied
	}

	result := s.db.Where("garage_id = ? AND key = ?", garageID, key).Delete(&models.GarageSetting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}
	return nil
}

func mapGarageToResponse(g *models.Garage) dto.GarageResponse {
	return dto.GarageResponse{
		ID:        g.ID,
		Name:      g.Name,
		Address:   g.Address,
		Phone:     g.Phone,
		Email:     g.Email,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
		UpdatedAt: g.UpdatedAt.Format(time.RFC3339),
	}
}
