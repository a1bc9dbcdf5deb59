package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/authz"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/models"
)

func TestVehicleListScopedToCallerGarage(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewVehicleService(db)

	garageA := seedGarage(t, db, "Garage A")
	garageB := seedGarage(t, db, "Garage B")
	seedVehicle(t, db, garageA.ID)
	seedVehicle(t, db, garageA.ID)
	seedVehicle(t, db, garageB.ID)

	_, employee := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)
	_, admin := seedMember(t, db, "adm@example.com", nil, authz.RoleAdmin)
	_, unassigned := seedMember(t, db, "lost@example.com", nil, authz.RoleEmployee)

	resp, err := svc.List(employee, VehicleFilter{}, 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("employee sees %d vehicles, want 2", resp.Total)
	}

	resp, err = svc.List(admin, VehicleFilter{}, 1, 20)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if resp.Total != 3 {
		t.Fatalf("admin sees %d vehicles, want 3", resp.Total)
	}

	resp, err = svc.List(unassigned, VehicleFilter{}, 1, 20)
	if err != nil {
		t.Fatalf("unassigned list: %v", err)
	}
	if resp.Total != 0 {
		t.Fatalf("unassigned sees %d vehicles, want 0", resp.Total)
	}
}

func TestVehicleGetHidesOtherGarage(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewVehicleService(db)

	garageA := seedGarage(t, db, "Garage A")
	garageB := seedGarage(t, db, "Garage B")
	foreign := seedVehicle(t, db, garageB.ID)

	_, employee := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)

	// Invisible row reads exactly like a missing one.
	if _, err := svc.Get(employee, foreign.ID); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
	if _, err := svc.Get(employee, uuid.New()); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound for random id, got %v", err)
	}
}

func TestVehicleCreateRoles(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewVehicleService(db)

	garageA := seedGarage(t, db, "Garage A")
	garageB := seedGarage(t, db, "Garage B")

	_, manager := seedMember(t, db, "mgr@example.com", garagePtr(garageA.ID), authz.RoleManager, authz.RoleEmployee)
	_, employee := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)
	_, admin := seedMember(t, db, "adm@example.com", nil, authz.RoleAdmin)

	req := func() *dto.CreateVehicleRequest {
		return &dto.CreateVehicleRequest{
			Make: "Renault", Model: "Clio", Year: 2021, Price: 12000,
			FuelType: models.FuelGasoline, Condition: models.ConditionUsed,
		}
	}

	// Manager creates in their own garage without naming it.
	created, err := svc.Create(manager, req())
	if err != nil {
		t.Fatalf("manager create: %v", err)
	}
	if created.GarageID != garageA.ID {
		t.Fatalf("vehicle landed in %s, want %s", created.GarageID, garageA.ID)
	}
	if !created.IsAvailable {
		t.Fatal("new vehicle must start available")
	}

	// Employee lacks the manager role.
	if _, err := svc.Create(employee, req()); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for employee, got %v", err)
	}

	// Manager cannot create into another garage.
	cross := req()
	cross.GarageID = garagePtr(garageB.ID)
	if _, err := svc.Create(manager, cross); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied cross-garage, got %v", err)
	}

	// Admin may target any garage but must name one (no profile assignment).
	adminReq := req()
	adminReq.GarageID = garagePtr(garageB.ID)
	if _, err := svc.Create(admin, adminReq); err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if _, err := svc.Create(admin, req()); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for unassigned admin without garage_id, got %v", err)
	}
}

func TestVehicleCreateValidation(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewVehicleService(db)

	garageA := seedGarage(t, db, "Garage A")
	_, manager := seedMember(t, db, "mgr@example.com", garagePtr(garageA.ID), authz.RoleManager)

	base := dto.CreateVehicleRequest{
		Make: "Renault", Model: "Clio", Year: 2021, Price: 12000,
		FuelType: models.FuelGasoline, Condition: models.ConditionUsed,
	}

	bad := base
	bad.FuelType = "steam"
	if _, err := svc.Create(manager, &bad); !errors.Is(err, ErrInvalidFuelType) {
		t.Fatalf("expected ErrInvalidFuelType, got %v", err)
	}

	bad = base
	bad.Condition = "wrecked"
	if _, err := svc.Create(manager, &bad); !errors.Is(err, ErrInvalidCondition) {
		t.Fatalf("expected ErrInvalidCondition, got %v", err)
	}

	bad = base
	bad.Year = 1850
	if _, err := svc.Create(manager, &bad); !errors.Is(err, ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}

	bad = base
	bad.Price = 0
	if _, err := svc.Create(manager, &bad); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestVehicleUpdateAdvancesTimestamp(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewVehicleService(db)

	garageA := seedGarage(t, db, "Garage A")
	vehicle := seedVehicle(t, db, garageA.ID)
	_, manager := seedMember(t, db, "mgr@example.com", garagePtr(garageA.ID), authz.RoleManager)

	var before models.Vehicle
	if err := db.First(&before, "id = ?", vehicle.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	// Update with no field changes still bumps the timestamp.
	if _, err := svc.Update(manager, vehicle.ID, &dto.UpdateVehicleRequest{}); err != nil {
		t.Fatalf("update: %v", err)
	}

	var after models.Vehicle
	if err := db.First(&after, "id = ?", vehicle.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("updated_at did not advance: before=%v after=%v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestVehicleUpdateDeniedForEmployee(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewVehicleService(db)

	garageA := seedGarage(t, db, "Garage A")
	vehicle := seedVehicle(t, db, garageA.ID)
	_, employee := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)

	price := 9999.0
	if _, err := svc.Update(employee, vehicle.ID, &dto.UpdateVehicleRequest{Price: &price}); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestVehicleDeleteRestrictedBySales(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewVehicleService(db)
	saleSvc := NewSaleService(db)

	garageA := seedGarage(t, db, "Garage A")
	vehicle := seedVehicle(t, db, garageA.ID)
	client := seedClient(t, db, garageA.ID)
	_, manager := seedMember(t, db, "mgr@example.com", garagePtr(garageA.ID), authz.RoleManager, authz.RoleEmployee)

	if _, err := saleSvc.Create(manager, &dto.CreateSaleRequest{
		VehicleID: vehicle.ID,
		ClientID:  client.ID,
		SalePrice: 14500,
	}); err != nil {
		t.Fatalf("create sale: %v", err)
	}

	if err := svc.Delete(manager, vehicle.ID); !errors.Is(err, ErrVehicleHasSales) {
		t.Fatalf("expected ErrVehicleHasSales, got %v", err)
	}

	// A vehicle with no sale history deletes normally.
	free := seedVehicle(t, db, garageA.ID)
	if err := svc.Delete(manager, free.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(manager, free.ID); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound after delete, got %v", err)
	}
}

func TestVehicleListFilters(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewVehicleService(db)

	garageA := seedGarage(t, db, "Garage A")
	_, admin := seedMember(t, db, "adm@example.com", nil, authz.RoleAdmin)

	diesel := models.Vehicle{
		ID: uuid.New(), GarageID: garageA.ID, Make: "Peugeot", Model: "308",
		Year: 2019, Price: 11000, FuelType: models.FuelDiesel, Condition: models.ConditionUsed, IsAvailable: true,
	}
	if err := db.Create(&diesel).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	seedVehicle(t, db, garageA.ID)

	resp, err := svc.List(admin, VehicleFilter{FuelType: models.FuelDiesel}, 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Total != 1 || resp.Vehicles[0].Make != "Peugeot" {
		t.Fatalf("fuel filter returned %d rows", resp.Total)
	}

	resp, err = svc.List(admin, VehicleFilter{Search: "peug"}, 1, 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("search returned %d rows, want 1", resp.Total)
	}
}
