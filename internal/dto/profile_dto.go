package dto

import "github.com/google/uuid"

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// AdminUpdateProfileRequest additionally allows reassigning the garage.
// The owning identity of a profile can never be changed.
type AdminUpdateProfileRequest struct {
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	Email     *string    `json:"email"`
	Phone     *string    `json:"phone"`
	GarageID  *uuid.UUID `json:"garage_id"`
}

type ProfileResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	GarageID  *uuid.UUID `json:"garage_id"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

type GrantRoleRequest struct {
	Role string `json:"role"`
}

type RoleAssignmentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt string    `json:"created_at"`
}
