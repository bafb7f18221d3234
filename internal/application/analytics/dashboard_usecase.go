// Package analytics holds the read-only derived views: low-stock alerts
// and the dashboard KPI summary. Everything here is recomputed on demand
// from the ledger and the catalogs; nothing is cached.
package analytics

import (
	"context"
	"fmt"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/dto"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
)

// DashboardUseCase computes KPIs and low-stock alerts.
type DashboardUseCase struct {
	levelRepo     repository.InventoryLevelRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(
	levelRepo repository.InventoryLevelRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		levelRepo:     levelRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// LowStockAlerts returns every ledger row whose quantity is strictly below
// its product's threshold, joined with the product.
func (uc *DashboardUseCase) LowStockAlerts(ctx context.Context) ([]repository.LowStockRow, error) {
	return uc.levelRepo.ListLowStock(ctx)
}

// KPIs builds the dashboard summary. The four reads are independent, so
// they fan out in parallel goroutines.
//
// stockValue is the raw sum of ledger quantities — deliberately not
// price-weighted; the consuming dashboard depends on this exact figure.
func (uc *DashboardUseCase) KPIs(ctx context.Context) (*dto.DashboardKPIs, error) {
	type countResult struct {
		n   int64
		err error
	}
	type lowStockResult struct {
		rows []repository.LowStockRow
		err  error
	}

	productsCh := make(chan countResult, 1)
	stockCh := make(chan countResult, 1)
	warehousesCh := make(chan countResult, 1)
	lowStockCh := make(chan lowStockResult, 1)

	go func() {
		n, err := uc.productRepo.Count(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.levelRepo.SumQuantities(ctx)
		stockCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.warehouseRepo.CountByStatus(ctx, entity.WarehouseStatusActive)
		warehousesCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.levelRepo.ListLowStock(ctx)
		lowStockCh <- lowStockResult{rows, err}
	}()

	products := <-productsCh
	stock := <-stockCh
	warehouses := <-warehousesCh
	lowStock := <-lowStockCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: product count: %w", products.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: stock value: %w", stock.err)
	}
	if warehouses.err != nil {
		return nil, fmt.Errorf("dashboard: active warehouses: %w", warehouses.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("dashboard: low stock: %w", lowStock.err)
	}

	return &dto.DashboardKPIs{
		TotalProducts:    products.n,
		StockValue:       stock.n,
		LowStockCount:    int64(len(lowStock.rows)),
		ActiveWarehouses: warehouses.n,
	}, nil
}
