package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ilywak/autosales-hub/internal/authz"
	"github.com/ilywak/autosales-hub/internal/dto"
)

func TestDashboardAggregates(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewReportService(db)
	saleSvc := NewSaleService(db)

	garageA := seedGarage(t, db, "Garage A")
	garageB := seedGarage(t, db, "Garage B")
	v1 := seedVehicle(t, db, garageA.ID)
	seedVehicle(t, db, garageA.ID)
	seedVehicle(t, db, garageB.ID)
	client := seedClient(t, db, garageA.ID)

	_, member := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)

	now := time.Now().UTC()
	if _, err := saleSvc.Create(member, &dto.CreateSaleRequest{
		VehicleID: v1.ID, ClientID: client.ID, SalePrice: 8000, SaleDate: &now,
	}); err != nil {
		t.Fatalf("create sale: %v", err)
	}

	resp, err := svc.Dashboard(member, nil)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if resp.VehiclesTotal != 2 {
		t.Fatalf("vehicles total = %d, want 2", resp.VehiclesTotal)
	}
	if resp.VehiclesAvailable != 1 {
		t.Fatalf("vehicles available = %d, want 1", resp.VehiclesAvailable)
	}
	if resp.ClientsTotal != 1 {
		t.Fatalf("clients total = %d, want 1", resp.ClientsTotal)
	}
	if resp.SalesTotal != 1 || resp.Revenue != 8000 {
		t.Fatalf("sales = %d revenue = %v", resp.SalesTotal, resp.Revenue)
	}

	if len(resp.SalesByMonth) != 6 {
		t.Fatalf("series length = %d, want 6", len(resp.SalesByMonth))
	}
	current := resp.SalesByMonth[len(resp.SalesByMonth)-1]
	if current.Month != now.Format("2006-01") || current.Count != 1 || current.Revenue != 8000 {
		t.Fatalf("current month bucket = %+v", current)
	}
}

func TestDashboardScope(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewReportService(db)

	garageA := seedGarage(t, db, "Garage A")
	garageB := seedGarage(t, db, "Garage B")

	_, member := seedMember(t, db, "emp@example.com", garagePtr(garageA.ID), authz.RoleEmployee)
	_, admin := seedMember(t, db, "adm@example.com", nil, authz.RoleAdmin)
	_, unassigned := seedMember(t, db, "lost@example.com", nil, authz.RoleEmployee)

	// Member may not report on another garage.
	if _, err := svc.Dashboard(member, garagePtr(garageB.ID)); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	// Admin may report on any garage but must name one.
	if _, err := svc.Dashboard(admin, garagePtr(garageB.ID)); err != nil {
		t.Fatalf("admin dashboard: %v", err)
	}
	if _, err := svc.Dashboard(admin, nil); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for unassigned admin without garage, got %v", err)
	}
	// Unassigned members cannot report at all.
	if _, err := svc.Dashboard(unassigned, nil); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for unassigned member, got %v", err)
	}
}
