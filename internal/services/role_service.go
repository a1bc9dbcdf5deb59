package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/authz"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidRole        = errors.New("invalid role")
	ErrRoleAlreadyGranted = errors.New("role already granted")
	ErrRoleNotFound       = errors.New("role assignment not found")
)

type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

// ListForUser returns the role assignments of the given identity: own
// assignments for anyone, any identity's for admin.
func (s *RoleService) ListForUser(caller authz.Caller, userID uuid.UUID) ([]dto.RoleAssignmentResponse, error) {
	if !authz.Can(caller, authz.ActionSelect, authz.ResourceRoleAssignment, authz.OwnerTarget(userID)) {
		return nil, ErrAccessDenied
	}

	var assignments []models.UserRole
	if err := s.db.Where("user_id = ?", userID).Order("role ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	resp := make([]dto.RoleAssignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = dto.RoleAssignmentResponse{
			ID:        a.ID,
			UserID:    a.UserID,
			Role:      a.Role,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

// Grant assigns a role to an identity. Admin only; duplicate grants are
// rejected by the (user, role) uniqueness rule.
func (s *RoleService) Grant(caller authz.Caller, userID uuid.UUID, role string) (*dto.RoleAssignmentResponse, error) {
	if !authz.Can(caller, authz.ActionInsert, authz.ResourceRoleAssignment, authz.OwnerTarget(userID)) {
		return nil, ErrAccessDenied
	}
	if !authz.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var existing models.UserRole
	if err := s.db.Where("user_id = ? AND role = ?", userID, role).First(&existing).Error; err == nil {
		return nil, ErrRoleAlreadyGranted
	}

	assignment := models.UserRole{
		ID:     uuid.New(),
		UserID: userID,
		Role:   role,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to grant role: %w", err)
	}

	return &dto.RoleAssignmentResponse{
		ID:        assignment.ID,
		UserID:    assignment.UserID,
		Role:      assignment.Role,
		CreatedAt: assignment.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Revoke removes a role assignment. Admin only.
func (s *RoleService) Revoke(caller authz.Caller, userID uuid.UUID, role string) error {
	if !authz.Can(caller, authz.ActionDelete, authz.ResourceRoleAssignment, authz.OwnerTarget(userID)) {
		return ErrAccessDenied
	}

	result := s.db.Where("user_id = ? AND role = ?", userID, role).Delete(&models.UserRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoleNotFound
	}
	return nil
}

// EnsureAdmins grants the admin role to identities with the given emails.
// Called once at startup with the configured bootstrap list; idempotent.
func (s *RoleService) EnsureAdmins(emails []string) {
	for _, email := range emails {
		var user models.User
		if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
			continue
		}
		var existing models.UserRole
		if err := s.db.Where("user_id = ? AND role = ?", user.ID, string(authz.RoleAdmin)).First(&existing).Error; err == nil {
			continue
		}
		assignment := models.UserRole{
			ID:     uuid.New(),
			UserID: user.ID,
			Role:   string(authz.RoleAdmin),
		}
		if err := s.db.Create(&assignment).Error; err != nil {
			slog.Error("failed to bootstrap admin role", "error", err, "email", email)
		} else {
			slog.Info("admin role granted", "email", email)
		}
	}
}
