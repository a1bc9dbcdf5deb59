package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/ilywak/autosales-hub/internal/authz"
	"github.com/ilywak/autosales-hub/internal/dto"
	"github.com/ilywak/autosales-hub/internal/models"
	"github.com/ilywak/autosales-hub/internal/tenant"
	"gorm.io/gorm"
)

// Months of sales history included in the dashboard series.
const dashboardMonths = 6

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Dashboard aggregates garage-scoped inventory and sales figures. Members
// report on their own garage; admin may pass any garage id.
func (s *ReportService) Dashboard(caller authz.Caller, garageID *uuid.UUID) (*dto.DashboardResponse, error) {
	if garageID == nil {
		garageID = caller.GarageID
	}
	if garageID == nil {
		return nil, ErrAccessDenied
	}
	if !authz.Can(caller, authz.ActionSelect, authz.ResourceSale, authz.GarageTarget(*garageID)) {
		return nil, ErrAccessDenied
	}

	resp := &dto.DashboardResponse{GarageID: garageID.String()}
	scope := tenant.ForGarage(*garageID)

	if err := s.db.Model(&models.Vehicle{}).Scopes(scope).Count(&resp.VehiclesTotal).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Vehicle{}).Scopes(scope).
		Where("is_available = ?", true).Count(&resp.VehiclesAvailable).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Client{}).Scopes(scope).Count(&resp.ClientsTotal).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Sale{}).Scopes(scope).Count(&resp.SalesTotal).Error; err != nil {
		return nil, err
	}

	var revenue *float64
	if err := s.db.Model(&models.Sale{}).Scopes(scope).
		Select("SUM(sale_price)").Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue != nil {
		resp.Revenue = *revenue
	}

	series, err := s.monthlySales(*garageID)
	if err != nil {
		return nil, err
	}
	resp.SalesByMonth = series

	return resp, nil
}

// monthlySales buckets recent sales by calendar month in Go rather than SQL
// so the grouping works identically across database engines.
func (s *ReportService) monthlySales(garageID uuid.UUID) ([]dto.MonthlySales, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(dashboardMonths - 1), 0)

	var sales []models.Sale
	if err := s.db.Scopes(tenant.ForGarage(garageID)).
		Where("sale_date >= ?", start).Find(&sales).Error; err != nil {
		return nil, err
	}

	buckets := make(map[string]*dto.MonthlySales, dashboardMonths)
	series := make([]dto.MonthlySales, 0, dashboardMonths)
	for i := 0; i < dashboardMonths; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		series = append(series, dto.MonthlySales{Month: month})
		buckets[month] = &series[len(series)-1]
	}

	for _, sale := range sales {
		month := sale.SaleDate.UTC().Format("2006-01")
		if bucket, ok := buckets[month]; ok {
			bucket.Count++
			bucket.Revenue += sale.SalePrice
		}
	}

	return series, nil
}
