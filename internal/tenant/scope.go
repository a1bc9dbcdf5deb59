package tenant

import (
	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/authz"
	"gorm.io/gorm"
)

// ForGarage returns a GORM scope that filters by garage_id.
func ForGarage(garageID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("garage_id = ?", garageID)
	}
}

// VisibleTo returns a GORM scope restricting garage-scoped rows to what the
// caller may read: everything for admin, the caller's own garage otherwise.
// Callers with no garage assignment see nothing, so denied rows surface as
// not-found rather than forbidden.
func VisibleTo(caller authz.Caller) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if caller.IsAdmin() {
			return db
		}
		if caller.GarageID == nil {
			return db.Where("1 = 0")
		}
		return db.Where("garage_id = ?", *caller.GarageID)
	}
}
