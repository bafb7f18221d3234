package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/analytics"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
)

// Partial fakes: embed the interface and override only what the
// aggregator touches.

type fakeLevelRepo struct {
	repository.InventoryLevelRepository
	lowStock []repository.LowStockRow
	total    int64
	err      error
}

func (f *fakeLevelRepo) ListLowStock(context.Context) ([]repository.LowStockRow, error) {
	return f.lowStock, f.err
}

func (f *fakeLevelRepo) SumQuantities(context.Context) (int64, error) {
	return f.total, f.err
}

type fakeProductRepo struct {
	repository.ProductRepository
	count int64
}

func (f *fakeProductRepo) Count(context.Context) (int64, error) { return f.count, nil }

type fakeWarehouseRepo struct {
	repository.WarehouseRepository
	active int64
	asked  string
}

func (f *fakeWarehouseRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	f.asked = status
	return f.active, nil
}

func lowStockRow(warehouseID string, quantity, threshold int64) repository.LowStockRow {
	return repository.LowStockRow{
		Level:   entity.InventoryLevel{ProductID: "p1", WarehouseID: warehouseID, Quantity: quantity},
		Product: entity.Product{ID: "p1", SKU: "SKU-001", LowStockThreshold: threshold},
	}
}

func TestKPIs_AggregatesAllFourReads(t *testing.T) {
	warehouses := &fakeWarehouseRepo{active: 3}
	uc := analytics.NewDashboardUseCase(
		&fakeLevelRepo{total: 1250, lowStock: []repository.LowStockRow{lowStockRow("w1", 4, 10), lowStockRow("w2", 0, 5)}},
		&fakeProductRepo{count: 42},
		warehouses,
	)

	kpis, err := uc.KPIs(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 42, kpis.TotalProducts)
	assert.EqualValues(t, 1250, kpis.StockValue)
	assert.EqualValues(t, 2, kpis.LowStockCount)
	assert.EqualValues(t, 3, kpis.ActiveWarehouses)
	assert.Equal(t, entity.WarehouseStatusActive, warehouses.asked, "only active warehouses count")
}

func TestKPIs_PropagatesStorageErrors(t *testing.T) {
	uc := analytics.NewDashboardUseCase(
		&fakeLevelRepo{err: errors.New("connection refused")},
		&fakeProductRepo{count: 1},
		&fakeWarehouseRepo{active: 1},
	)
	_, err := uc.KPIs(context.Background())
	require.Error(t, err)
}

func TestLowStockAlerts_DelegatesToLedger(t *testing.T) {
	rows := []repository.LowStockRow{lowStockRow("w1", 49, 50)}
	uc := analytics.NewDashboardUseCase(&fakeLevelRepo{lowStock: rows}, &fakeProductRepo{}, &fakeWarehouseRepo{})

	got, err := uc.LowStockAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.EqualValues(t, 49, got[0].Level.Quantity)
	assert.EqualValues(t, 50, got[0].Product.LowStockThreshold)
}
