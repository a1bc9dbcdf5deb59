package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/authz"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/models"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetOwn returns the caller's own profile.
func (s *ProfileService) GetOwn(caller authz.Caller) (*dto.ProfileResponse, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", caller.UserID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	resp := mapProfileToResponse(&profile)
	return &resp, nil
}

// Get returns a profile by id: own profile for anyone, any profile for admin.
func (s *ProfileService) Get(caller authz.Caller, id uuid.UUID) (*dto.ProfileResponse, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if !authz.Can(caller, authz.ActionSelect, authz.ResourceProfile, authz.OwnerTarget(profile.UserID)) {
		return nil, ErrProfileNotFound
	}
	resp := mapProfileToResponse(&profile)
	return &resp, nil
}

// List returns all profiles. Admin only.
func (s *ProfileService) List(caller authz.Caller) ([]dto.ProfileResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrAccessDenied
	}

	var profiles []models.Profile
	if err := s.db.Order("last_name ASC, first_name ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}

	resp := make([]dto.ProfileResponse, len(profiles))
	for i := range profiles {
		resp[i] = mapProfileToResponse(&profiles[i])
	}
	return resp, nil
}

// UpdateOwn updates the caller's own profile. The request carries no user_id
// field: a profile can never be moved to another identity, and garage
// assignment is admin-only via AdminUpdate.
func (s *ProfileService) UpdateOwn(caller authz.Caller, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if !authz.Can(caller, authz.ActionUpdate, authz.ResourceProfile, authz.OwnerTarget(caller.UserID)) {
		return nil, ErrAccessDenied
	}

	updates := profileUpdates(req.FirstName, req.LastName, req.Email, req.Phone)

	result := s.db.Model(&models.Profile{}).Where("user_id = ?", caller.UserID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProfileNotFound
	}

	return s.GetOwn(caller)
}

// AdminUpdate updates any profile, including garage assignment. Admin only.
func (s *ProfileService) AdminUpdate(caller authz.Caller, id uuid.UUID, req *dto.AdminUpdateProfileRequest) (*dto.ProfileResponse, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, ErrAccessDenied
	}

	updates := profileUpdates(req.FirstName, req.LastName, req.Email, req.Phone)
	if req.GarageID != nil {
		var garage models.Garage
		if err := s.db.First(&garage, "id = ?", *req.GarageID).Error; err != nil {
			return nil, ErrGarageNotFound
		}
		updates["garage_id"] = *req.GarageID
	}

	if err := s.db.Model(&profile).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.Get(caller, id)
}

func profileUpdates(firstName, lastName, email, phone *string) map[string]interface{} {
	updates := map[string]interface{}{}
	if firstName != nil {
		updates["first_name"] = *firstName
	}
	if lastName != nil {
		updates["last_name"] = *lastName
	}
	if email != nil {
		updates["email"] = *email
	}
	if phone != nil {
		updates["phone"] = *phone
	}
	// Timestamp advances on every successful update regardless of fields.
	updates["updated_at"] = time.Now().UTC()
	return updates
}

func mapProfileToResponse(p *models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		GarageID:  p.GarageID,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}
