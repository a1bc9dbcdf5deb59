package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole assigns a role (admin, manager, employee) to an identity.
// An identity may hold several roles; uniqueness is on the (user, role) pair.
// The admin role is not scoped by garage.
type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_user_role" json:"user_id"`
	Role      string    `gorm:"not null;size:20;uniqueIndex:idx_user_roles_user_role" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
