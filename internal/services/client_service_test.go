package services

import (
	"errors"
	"testing"

	"github.com/ilywak/autosales-hub/internal/authz"
	"github.com/ilywak/autosales-hub/internal/dto"
)

func TestClientCreateAndSearch(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewClientService(db)

	garageA := seedGarage(t, db, "Garage A")
	_, manager := seedMember(t, db, "mgr@example.com", garagePtr(garageA.ID), authz.RoleManager)
	_, employee := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)

	created, err := svc.Create(manager, &dto.CreateClientRequest{
		FirstName: "Marie", LastName: "Curie", Email: "marie@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.GarageID != garageA.ID {
		t.Fatalf("client garage = %s, want %s", created.GarageID, garageA.ID)
	}

	if _, err := svc.Create(employee, &dto.CreateClientRequest{
		FirstName: "Paul", LastName: "Dur",
	}); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for employee create, got %v", err)
	}

	if _, err := svc.Create(manager, &dto.CreateClientRequest{
		FirstName: "Louis", LastName: "Pasteur",
	}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	resp, err := svc.List(employee, "curie", 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Total != 1 || resp.Clients[0].LastName != "Curie" {
		t.Fatalf("search returned %d rows", resp.Total)
	}
}

func TestClientDeleteRestrictedBySales(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewClientService(db)
	saleSvc := NewSaleService(db)

	garageA := seedGarage(t, db, "Garage A")
	vehicle := seedVehicle(t, db, garageA.ID)
	client := seedClient(t, db, garageA.ID)
	_, manager := seedMember(t, db, "mgr@example.com", garagePtr(garageA.ID), authz.RoleManager, authz.RoleEmployee)

	if _, err := saleSvc.Create(manager, &dto.CreateSaleRequest{
		VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: 7500,
	}); err != nil {
		t.Fatalf("create sale: %v", err)
	}

	if err := svc.Delete(manager, client.ID); !errors.Is(err, ErrClientHasSales) {
		t.Fatalf("expected ErrClientHasSales, got %v", err)
	}

	free := seedClient(t, db, garageA.ID)
	if err := svc.Delete(manager, free.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(manager, free.ID); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound after delete, got %v", err)
	}
}

func TestClientVisibilityAcrossGarages(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewClientService(db)

	garageA := seedGarage(t, db, "Garage A")
	garageB := seedGarage(t, db, "Garage B")
	foreign := seedClient(t, db, garageB.ID)
	seedClient(t, db, garageA.ID)

	_, employee := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)

	resp, err := svc.List(employee, "", 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("employee sees %d clients, want 1", resp.Total)
	}
	if _, err := svc.Get(employee, foreign.ID); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound for foreign client, got %v", err)
	}
}
