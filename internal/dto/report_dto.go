package dto

type MonthlySales struct {
	Month   string  `json:"month"` // YYYY-MM
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DashboardResponse struct {
	GarageID          string         `json:"garage_id"`
	VehiclesTotal     int64          `json:"vehicles_total"`
	VehiclesAvailable int64          `json:"vehicles_available"`
	ClientsTotal      int64          `json:"clients_total"`
	SalesTotal        int64          `json:"sales_total"`
	Revenue           float64        `json:"revenue"`
	SalesByMonth      []MonthlySales `json:"sales_by_month"`
}
