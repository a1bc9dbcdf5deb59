package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/authz"
	"github.com/ilywak/autosales-hub/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Garage{},
		&models.Profile{},
		&models.UserRole{},
		&models.RefreshToken{},
		&models.GarageSetting{},
		&models.Vehicle{},
		&models.Client{},
		&models.Sale{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedGarage(t *testing.T, db *gorm.DB, name string) models.Garage {
	t.Helper()
	g := models.Garage{ID: uuid.New(), Name: name}
	if err := db.Create(&g).Error; err != nil {
		t.Fatalf("seed garage: %v", err)
	}
	return g
}

// seedMember creates a user with a profile assigned to garageID (nil for
// unassigned) plus role rows, and returns the resolved caller context.
func seedMember(t *testing.T, db *gorm.DB, email string, garageID *uuid.UUID, roles ...authz.Role) (models.Profile, authz.Caller) {
	t.Helper()
	u := models.User{ID: uuid.New(), Email: email, Password: "hash"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	p := models.Profile{ID: uuid.New(), UserID: u.ID, FirstName: "Test", LastName: "User", Email: email, GarageID: garageID}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	for _, r := range roles {
		if err := db.Create(&models.UserRole{ID: uuid.New(), UserID: u.ID, Role: string(r)}).Error; err != nil {
			t.Fatalf("seed role: %v", err)
		}
	}
	return p, authz.Caller{UserID: u.ID, GarageID: garageID, Roles: roles}
}

func seedVehicle(t *testing.T, db *gorm.DB, garageID uuid.UUID) models.Vehicle {
	t.Helper()
	v := models.Vehicle{
		ID:          uuid.New(),
		GarageID:    garageID,
		Make:        "Toyota",
		Model:       "Corolla",
		Year:        2020,
		Price:       15000,
		FuelType:    models.FuelGasoline,
		Condition:   models.ConditionUsed,
		IsAvailable: true,
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return v
}

func seedClient(t *testing.T, db *gorm.DB, garageID uuid.UUID) models.Client {
	t.Helper()
	c := models.Client{
		ID:        uuid.New(),
		GarageID:  garageID,
		FirstName: "Jean",
		LastName:  "Dupont",
		Email:     fmt.Sprintf("client-%s@example.com", uuid.NewString()[:8]),
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

func garagePtr(id uuid.UUID) *uuid.UUID { return &id }
