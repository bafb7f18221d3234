package dto

// DashboardKPIs response of GET /api/dashboard/kpis.
// StockValue is the raw sum of ledger quantities, not a price-weighted
// figure; the name is kept for compatibility with the consuming dashboard.
type DashboardKPIs struct {
	TotalProducts    int64 `json:"totalProducts"`
	StockValue       int64 `json:"stockValue"`
	LowStockCount    int64 `json:"lowStockCount"`
	ActiveWarehouses int64 `json:"activeWarehouses"`
}
