package repo

type TopSeller struct {
	Name      string `json:"name"`
	UnitsSold int    `json:"units_sold"`
}

type Metrics struct {
	TotalProducts int       `json:"total_products"`
	LowStockCount int       `json:"low_stock_count"`
	ExpiringSoon  int       `json:"expiring_soon"`
	SalesToday    int       `json:"sales_today"`
	RevenueToday  float64   `json:"revenue_today"`
	ProfitToday   float64   `json:"profit_today"`
	TopSeller     TopSeller `json:"top_seller"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ownerID int) (Metrics, error)
}
