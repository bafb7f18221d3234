package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/inventory"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/event"
	"github.com/d2much2/WarehouseTracker-1-sub000/pkg/logger"
)

const (
	testProductID   = "11111111-1111-1111-1111-111111111111"
	testWarehouse1  = "22222222-2222-2222-2222-222222222221"
	testWarehouse2  = "22222222-2222-2222-2222-222222222222"
	testUserID      = "33333333-3333-3333-3333-333333333331"
	unknownEntityID = "99999999-9999-9999-9999-999999999999"
)

type recorderFixture struct {
	store    *memStore
	txRunner *memTxRunner
	notifier *captureNotifier
	uc       *inventory.RecordMovementUseCase
}

func newRecorderFixture(t *testing.T) *recorderFixture {
	t.Helper()
	store := newMemStore()
	products := newMemProductRepo(entity.Product{ID: testProductID, SKU: "SKU-001", Name: "Widget", LowStockThreshold: 10})
	warehouses := newMemWarehouseRepo(
		entity.Warehouse{ID: testWarehouse1, Name: "North", Capacity: 1000, Status: entity.WarehouseStatusActive},
		entity.Warehouse{ID: testWarehouse2, Name: "South", Capacity: 1000, Status: entity.WarehouseStatusActive},
	)
	txRunner := &memTxRunner{store: store, products: products, warehouses: warehouses}
	notifier := &captureNotifier{}
	uc := inventory.NewRecordMovementUseCase(
		txRunner,
		products,
		warehouses,
		notifier,
		logger.New(logger.Config{Level: "error"}),
	)
	return &recorderFixture{store: store, txRunner: txRunner, notifier: notifier, uc: uc}
}

func (f *recorderFixture) record(t *testing.T, input inventory.MovementInput) *entity.StockMovement {
	t.Helper()
	m, err := f.uc.Record(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}

func movementInput(movType string, quantity int64) inventory.MovementInput {
	return inventory.MovementInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouse1,
		Type:        movType,
		Quantity:    quantity,
		UserID:      testUserID,
	}
}

func TestRecord_InCreatesLedgerRowLazily(t *testing.T) {
	f := newRecorderFixture(t)

	m := f.record(t, movementInput(entity.MovementTypeIn, 100))

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, entity.MovementTypeIn, m.Type)
	assert.EqualValues(t, 100, f.store.quantity(testProductID, testWarehouse1))
	assert.Equal(t, 1, f.store.movementCount())
}

func TestRecord_OutDecrementsAndRejectsOverdraft(t *testing.T) {
	f := newRecorderFixture(t)
	f.record(t, movementInput(entity.MovementTypeIn, 100))

	f.record(t, movementInput(entity.MovementTypeOut, 30))
	assert.EqualValues(t, 70, f.store.quantity(testProductID, testWarehouse1))

	_, err := f.uc.Record(context.Background(), movementInput(entity.MovementTypeOut, 100))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 70, f.store.quantity(testProductID, testWarehouse1), "failed out must not change the ledger")
	assert.Equal(t, 2, f.store.movementCount(), "failed out must not append to the journal")
}

func TestRecord_OutMayDrainToExactlyZero(t *testing.T) {
	f := newRecorderFixture(t)
	f.record(t, movementInput(entity.MovementTypeIn, 100))

	f.record(t, movementInput(entity.MovementTypeOut, 100))
	assert.EqualValues(t, 0, f.store.quantity(testProductID, testWarehouse1))
}

func TestRecord_AdjustmentIsAdditive(t *testing.T) {
	f := newRecorderFixture(t)
	f.record(t, movementInput(entity.MovementTypeIn, 10))

	f.record(t, movementInput(entity.MovementTypeAdjustment, 5))
	assert.EqualValues(t, 15, f.store.quantity(testProductID, testWarehouse1))
}

func TestRecord_TransferMovesStockAndConservesTotal(t *testing.T) {
	f := newRecorderFixture(t)
	f.record(t, movementInput(entity.MovementTypeIn, 50))

	in := movementInput(entity.MovementTypeTransfer, 20)
	in.TargetWarehouseID = testWarehouse2
	m := f.record(t, in)

	assert.Equal(t, testWarehouse2, m.TargetWarehouseID)
	assert.EqualValues(t, 30, f.store.quantity(testProductID, testWarehouse1))
	assert.EqualValues(t, 20, f.store.quantity(testProductID, testWarehouse2))
	total := f.store.quantity(testProductID, testWarehouse1) + f.store.quantity(testProductID, testWarehouse2)
	assert.EqualValues(t, 50, total, "transfer must conserve the product total")
	assert.Equal(t, 2, f.store.movementCount(), "a transfer is one journal row")
}

func TestRecord_FailedTransferLeavesNothingBehind(t *testing.T) {
	f := newRecorderFixture(t)
	f.record(t, movementInput(entity.MovementTypeIn, 30))

	in := movementInput(entity.MovementTypeTransfer, 1000)
	in.TargetWarehouseID = testWarehouse2
	_, err := f.uc.Record(context.Background(), in)

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 30, f.store.quantity(testProductID, testWarehouse1))
	assert.EqualValues(t, 0, f.store.quantity(testProductID, testWarehouse2))
	assert.Equal(t, 1, f.store.movementCount())
}

func TestRecord_Validation(t *testing.T) {
	transfer := func(target string) inventory.MovementInput {
		in := movementInput(entity.MovementTypeTransfer, 10)
		in.TargetWarehouseID = target
		return in
	}

	tests := []struct {
		name    string
		input   inventory.MovementInput
		wantErr error
	}{
		{"zero quantity", movementInput(entity.MovementTypeIn, 0), domain.ErrInvalidQuantity},
		{"negative quantity", movementInput(entity.MovementTypeIn, -5), domain.ErrInvalidQuantity},
		{"unknown type", movementInput("restock", 10), domain.ErrInvalidInput},
		{"transfer without target", transfer(""), domain.ErrMissingTargetWarehouse},
		{"transfer to itself", transfer(testWarehouse1), domain.ErrInvalidInput},
		{"transfer to unknown warehouse", transfer(unknownEntityID), domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRecorderFixture(t)
			_, err := f.uc.Record(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.store.movementCount(), "rejected request must not touch the journal")
		})
	}
}

func TestRecord_UnknownProductOrWarehouse(t *testing.T) {
	f := newRecorderFixture(t)

	in := movementInput(entity.MovementTypeIn, 10)
	in.ProductID = unknownEntityID
	_, err := f.uc.Record(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrNotFound)

	in = movementInput(entity.MovementTypeIn, 10)
	in.WarehouseID = unknownEntityID
	_, err = f.uc.Record(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecord_ConcurrentOutsNeverOversell(t *testing.T) {
	f := newRecorderFixture(t)
	f.record(t, movementInput(entity.MovementTypeIn, 100))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Record(context.Background(), movementInput(entity.MovementTypeOut, 60))
		}(i)
	}
	wg.Wait()

	var failed, succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent out must win")
	assert.Equal(t, 1, failed)
	assert.EqualValues(t, 40, f.store.quantity(testProductID, testWarehouse1))
}

func TestRecord_ConcurrentFirstMovementsBothApply(t *testing.T) {
	f := newRecorderFixture(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Record(context.Background(), movementInput(entity.MovementTypeIn, 100))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 200, f.store.quantity(testProductID, testWarehouse1),
		"two first movements on a fresh key must both apply, not overwrite each other")

	journal, err := (&memMovementRepo{store: f.store}).ListChronological(context.Background())
	require.NoError(t, err)
	levels, err := inventory.ReplayJournal(journal)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.EqualValues(t, 200, levels[0].Quantity, "replaying the journal must reproduce the ledger")
}

func TestRecord_OpposingConcurrentTransfersBothApply(t *testing.T) {
	f := newRecorderFixture(t)
	f.record(t, movementInput(entity.MovementTypeIn, 100))
	seed := movementInput(entity.MovementTypeIn, 100)
	seed.WarehouseID = testWarehouse2
	f.record(t, seed)

	forward := movementInput(entity.MovementTypeTransfer, 30)
	forward.TargetWarehouseID = testWarehouse2
	backward := movementInput(entity.MovementTypeTransfer, 20)
	backward.WarehouseID = testWarehouse2
	backward.TargetWarehouseID = testWarehouse1

	inputs := []inventory.MovementInput{forward, backward}
	var wg sync.WaitGroup
	errs := make([]error, len(inputs))
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Record(context.Background(), inputs[i])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 90, f.store.quantity(testProductID, testWarehouse1))
	assert.EqualValues(t, 110, f.store.quantity(testProductID, testWarehouse2))
	total := f.store.quantity(testProductID, testWarehouse1) + f.store.quantity(testProductID, testWarehouse2)
	assert.EqualValues(t, 200, total, "opposing transfers must conserve the product total")
}

func TestRecord_PublishesChangeEvents(t *testing.T) {
	f := newRecorderFixture(t)
	f.record(t, movementInput(entity.MovementTypeIn, 50))

	created := f.notifier.byType(event.TypeStockMovementCreated)
	require.Len(t, created, 1)

	updated := f.notifier.byType(event.TypeInventoryUpdated)
	require.Len(t, updated, 1)
	data, ok := updated[0].Data.(event.InventoryUpdatedData)
	require.True(t, ok)
	assert.Equal(t, testProductID, data.ProductID)
	assert.Equal(t, testWarehouse1, data.WarehouseID)
	assert.EqualValues(t, 50, data.Quantity)
	assert.False(t, updated[0].Timestamp.IsZero())
}

func TestRecord_TransferPublishesBothSides(t *testing.T) {
	f := newRecorderFixture(t)
	f.record(t, movementInput(entity.MovementTypeIn, 50))

	in := movementInput(entity.MovementTypeTransfer, 20)
	in.TargetWarehouseID = testWarehouse2
	f.record(t, in)

	updated := f.notifier.byType(event.TypeInventoryUpdated)
	require.Len(t, updated, 3) // one for the in, two for the transfer

	last := updated[len(updated)-1].Data.(event.InventoryUpdatedData)
	assert.Equal(t, testWarehouse2, last.WarehouseID)
	assert.EqualValues(t, 20, last.Quantity)
}

func TestRecord_RowShelfHintsStoredOnLedger(t *testing.T) {
	f := newRecorderFixture(t)

	in := movementInput(entity.MovementTypeIn, 10)
	in.Row = "A3"
	in.Shelf = "S7"
	f.record(t, in)

	f.store.mu.Lock()
	lvl := f.store.levels[levelKey{testProductID, testWarehouse1}]
	f.store.mu.Unlock()
	assert.Equal(t, "A3", lvl.Row)
	assert.Equal(t, "S7", lvl.Shelf)
}
