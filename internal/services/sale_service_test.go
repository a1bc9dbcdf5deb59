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

func TestSaleCreateByEmployee(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewSaleService(db)

	garageA := seedGarage(t, db, "Garage A")
	vehicle := seedVehicle(t, db, garageA.ID)
	client := seedClient(t, db, garageA.ID)
	profile, employee := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)

	sale, err := svc.Create(employee, &dto.CreateSaleRequest{
		VehicleID: vehicle.ID,
		ClientID:  client.ID,
		SalePrice: 14000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sale.GarageID != garageA.ID {
		t.Fatalf("sale garage = %s, want %s", sale.GarageID, garageA.ID)
	}
	if sale.EmployeeID != profile.ID {
		t.Fatalf("employee = %s, want caller's own profile %s", sale.EmployeeID, profile.ID)
	}

	// Selling removes the vehicle from available inventory.
	var sold models.Vehicle
	if err := db.First(&sold, "id = ?", vehicle.ID).Error; err != nil {
		t.Fatalf("reload vehicle: %v", err)
	}
	if sold.IsAvailable {
		t.Fatal("sold vehicle still marked available")
	}
}

func TestSaleCreateGarageBindsEveryone(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewSaleService(db)

	garageA := seedGarage(t, db, "Garage A")
	garageB := seedGarage(t, db, "Garage B")
	vehicle := seedVehicle(t, db, garageA.ID)
	client := seedClient(t, db, garageA.ID)

	_, employee := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)
	_, adminA := seedMember(t, db, "adm@example.com", garagePtr(garageA.ID), authz.RoleAdmin)
	_, adminFree := seedMember(t, db, "hq@example.com", nil, authz.RoleAdmin)

	// Employee naming another garage is denied.
	if _, err := svc.Create(employee, &dto.CreateSaleRequest{
		GarageID: garagePtr(garageB.ID), VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: 100,
	}); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}

	// Admin gets no exemption: the sale garage must be the admin's own.
	if _, err := svc.Create(adminA, &dto.CreateSaleRequest{
		GarageID: garagePtr(garageB.ID), VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: 100,
	}); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for admin cross-garage, got %v", err)
	}
	if _, err := svc.Create(adminA, &dto.CreateSaleRequest{
		VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: 100,
	}); err != nil {
		t.Fatalf("admin own-garage create: %v", err)
	}

	// An admin with no garage assignment cannot record sales at all.
	if _, err := svc.Create(adminFree, &dto.CreateSaleRequest{
		GarageID: garagePtr(garageA.ID), VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: 100,
	}); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for unassigned admin, got %v", err)
	}
}

func TestSaleCreateValidatesReferences(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewSaleService(db)

	garageA := seedGarage(t, db, "Garage A")
	vehicle := seedVehicle(t, db, garageA.ID)
	client := seedClient(t, db, garageA.ID)
	_, employee := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)

	if _, err := svc.Create(employee, &dto.CreateSaleRequest{
		VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: 0,
	}); !errors.Is(err, ErrInvalidSalePrice) {
		t.Fatalf("expected ErrInvalidSalePrice, got %v", err)
	}

	if _, err := svc.Create(employee, &dto.CreateSaleRequest{
		VehicleID: vehicle.ID, ClientID: uuid.New(), SalePrice: 100,
	}); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	if _, err := svc.Create(employee, &dto.CreateSaleRequest{
		VehicleID: uuid.New(), ClientID: client.ID, SalePrice: 100,
	}); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestSaleUpdateNeedsManager(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewSaleService(db)

	garageA := seedGarage(t, db, "Garage A")
	vehicle := seedVehicle(t, db, garageA.ID)
	client := seedClient(t, db, garageA.ID)
	_, employee := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)
	_, manager := seedMember(t, db, "mgr@example.com", garagePtr(garageA.ID), authz.RoleManager, authz.RoleEmployee)

	sale, err := svc.Create(employee, &dto.CreateSaleRequest{
		VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: 9000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPrice := 9500.0
	if _, err := svc.Update(employee, sale.ID, &dto.UpdateSaleRequest{SalePrice: &newPrice}); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for employee update, got %v", err)
	}

	updated, err := svc.Update(manager, sale.ID, &dto.UpdateSaleRequest{SalePrice: &newPrice})
	if err != nil {
		t.Fatalf("manager update: %v", err)
	}
	if updated.SalePrice != 9500 {
		t.Fatalf("sale price = %v, want 9500", updated.SalePrice)
	}
}

func TestSaleUpdateAdvancesTimestamp(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewSaleService(db)

	garageA := seedGarage(t, db, "Garage A")
	vehicle := seedVehicle(t, db, garageA.ID)
	client := seedClient(t, db, garageA.ID)
	_, manager := seedMember(t, db, "mgr@example.com", garagePtr(garageA.ID), authz.RoleManager)

	sale, err := svc.Create(manager, &dto.CreateSaleRequest{
		VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: 9000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var before models.Sale
	if err := db.First(&before, "id = ?", sale.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := svc.Update(manager, sale.ID, &dto.UpdateSaleRequest{}); err != nil {
		t.Fatalf("update: %v", err)
	}

	var after models.Sale
	if err := db.First(&after, "id = ?", sale.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatal("updated_at did not advance on no-op update")
	}
}

func TestSaleVisibilityScoped(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewSaleService(db)

	garageA := seedGarage(t, db, "Garage A")
	garageB := seedGarage(t, db, "Garage B")

	_, sellerA := seedMember(t, db, "a@example.com", garagePtr(garageA.ID), authz.RoleEmployee)
	_, sellerB := seedMember(t, db, "b@example.com", garagePtr(garageB.ID), authz.RoleEmployee)
	_, admin := seedMember(t, db, "adm@example.com", nil, authz.RoleAdmin)

	saleA, err := svc.Create(sellerA, &dto.CreateSaleRequest{
		VehicleID: seedVehicle(t, db, garageA.ID).ID, ClientID: seedClient(t, db, garageA.ID).ID, SalePrice: 100,
	})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	if _, err := svc.Create(sellerB, &dto.CreateSaleRequest{
		VehicleID: seedVehicle(t, db, garageB.ID).ID, ClientID: seedClient(t, db, garageB.ID).ID, SalePrice: 200,
	}); err != nil {
		t.Fatalf("create B: %v", err)
	}

	listA, err := svc.List(sellerA, 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listA.Total != 1 {
		t.Fatalf("seller A sees %d sales, want 1", listA.Total)
	}

	listAdmin, err := svc.List(admin, 1, 20)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if listAdmin.Total != 2 {
		t.Fatalf("admin sees %d sales, want 2", listAdmin.Total)
	}

	if _, err := svc.Get(sellerB, saleA.ID); !errors.Is(err, ErrSaleNotFound) {
		t.Fatalf("expected ErrSaleNotFound across garages, got %v", err)
	}
}
