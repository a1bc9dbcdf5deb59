// Package authz implements the role and garage access rules as a single pure
// decision function. Every data operation consults Can before touching
// storage; the caller context is always passed explicitly, never read from
// ambient state.
package authz

import "github.com/google/uuid"

// Role is one of the fixed role set.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Action is a data operation type.
type Action string

const (
	ActionSelect Action = "select"
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource names a protected entity.
type Resource string

const (
	ResourceGarage         Resource = "garage"
	ResourceGarageSetting  Resource = "garage_setting"
	ResourceProfile        Resource = "profile"
	ResourceRoleAssignment Resource = "role_assignment"
	ResourceVehicle        Resource = "vehicle"
	ResourceClient         Resource = "client"
	ResourceSale           Resource = "sale"
)

// Caller is the resolved identity context: who is asking, which garage their
// profile belongs to (nil if unassigned), and which roles they hold.
type Caller struct {
	UserID   uuid.UUID
	GarageID *uuid.UUID
	Roles    []Role
}

// HasRole reports whether the caller holds the given role.
func (c Caller) HasRole(r Role) bool {
	for _, have := range c.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool { return c.HasRole(RoleAdmin) }

func (c Caller) memberOf(garageID uuid.UUID) bool {
	return c.GarageID != nil && *c.GarageID == garageID
}

// Target identifies the row(s) an operation touches: the garage they belong
// to, and for identity-owned rows (profiles, role assignments) the owning
// user.
type Target struct {
	GarageID *uuid.UUID
	OwnerID  uuid.UUID
}

// GarageTarget builds a Target for a row owned by the given garage.
func GarageTarget(garageID uuid.UUID) Target {
	return Target{GarageID: &garageID}
}

// OwnerTarget builds a Target for an identity-owned row (profile, role
// assignment).
func OwnerTarget(userID uuid.UUID) Target {
	return Target{OwnerID: userID}
}

// Can decides whether the caller may perform action on resource for the given
// target. It is a pure function of its inputs: same inputs, same decision.
//
// Admin grants access unconditionally, with one exception: sale insertion is
// always bound to the caller's own garage, so an admin supplying another
// garage's id is denied like anyone else. Absent admin, garage membership and
// (where required) role are conjunctive requirements; a caller with no garage
// assignment resolves no garage match and is denied all garage-scoped
// operations.
func Can(caller Caller, action Action, resource Resource, target Target) bool {
	// Sale rows are append-only per garage: inserts must carry the caller's
	// own garage regardless of role, and no delete rule exists at all.
	if resource == ResourceSale {
		switch action {
		case ActionInsert:
			return target.GarageID != nil && caller.memberOf(*target.GarageID)
		case ActionDelete:
			return false
		}
	}

	if caller.IsAdmin() {
		return true
	}

	switch resource {
	case ResourceGarage, ResourceGarageSetting:
		// Members read their own garage; all writes are admin-only.
		return action == ActionSelect && target.GarageID != nil && caller.memberOf(*target.GarageID)

	case ResourceProfile:
		// Own profile is readable and updatable; creation and deletion are
		// admin-only (profiles are created as a registration side effect).
		return (action == ActionSelect || action == ActionUpdate) && target.OwnerID == caller.UserID

	case ResourceRoleAssignment:
		// Identities see their own assignments; only admin mutates them.
		return action == ActionSelect && target.OwnerID == caller.UserID

	case ResourceVehicle, ResourceClient:
		if target.GarageID == nil || !caller.memberOf(*target.GarageID) {
			return false
		}
		if action == ActionSelect {
			return true
		}
		return caller.HasRole(RoleManager)

	case ResourceSale:
		if target.GarageID == nil || !caller.memberOf(*target.GarageID) {
			return false
		}
		if action == ActionSelect {
			return true
		}
		// Update only; insert and delete were handled above.
		return caller.HasRole(RoleManager)
	}

	return false
}
