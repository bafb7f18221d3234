package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/dto"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/event"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
	"github.com/d2much2/WarehouseTracker-1-sub000/pkg/logger"
)

// RecordMovementUseCase is the only entry point allowed to mutate the
// ledger. Each recorded movement runs as one transaction: row lock on the
// source ledger row (SELECT FOR UPDATE), type-specific quantity math,
// one journal insert, one or two ledger upserts, commit.
type RecordMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	notifier      event.Notifier
	log           *logger.Logger
}

// NewRecordMovementUseCase builds the use case.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	notifier event.Notifier,
	log *logger.Logger,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		notifier:      notifier,
		log:           log,
	}
}

// MovementInput input for Record. Quantity must be positive; the type
// encodes direction. TargetWarehouseID is required for transfers and
// ignored otherwise.
type MovementInput struct {
	ProductID         string
	WarehouseID       string
	TargetWarehouseID string
	Type              string
	Quantity          int64
	Row               string
	Shelf             string
	Notes             string
	UserID            string
}

// RecordFromRequest adapts the HTTP body to Record.
func (uc *RecordMovementUseCase) RecordFromRequest(ctx context.Context, in dto.CreateMovementRequest) (*entity.StockMovement, error) {
	return uc.Record(ctx, MovementInput{
		ProductID:         in.ProductID,
		WarehouseID:       in.WarehouseID,
		TargetWarehouseID: in.TargetWarehouseID,
		Type:              in.Type,
		Quantity:          in.Quantity,
		Row:               in.Row,
		Shelf:             in.Shelf,
		Notes:             in.Notes,
		UserID:            in.UserID,
	})
}

// Record validates the request, applies it to the ledger inside one
// transaction and appends the journal row. On commit it returns the created
// movement and publishes change events; publishing is best-effort and never
// fails the caller.
func (uc *RecordMovementUseCase) Record(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if err := uc.validate(ctx, input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movement := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		WarehouseID: input.WarehouseID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Row:         input.Row,
		Shelf:       input.Shelf,
		Notes:       input.Notes,
		UserID:      input.UserID,
		CreatedAt:   now,
	}
	if input.Type == entity.MovementTypeTransfer {
		movement.TargetWarehouseID = input.TargetWarehouseID
	}

	// New quantities of the touched ledger rows, captured for the
	// post-commit events.
	var sourceAfter, targetAfter int64

	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.WarehouseRepository,
	) error {
		// Lock the touched rows for the rest of the transaction so two
		// concurrent movements on the same (product, warehouse) key cannot
		// both read a stale quantity.
		var source, target *entity.InventoryLevel
		var err error
		if input.Type == entity.MovementTypeTransfer {
			source, target, err = lockPair(ctx, levelRepo, input.ProductID, input.WarehouseID, input.TargetWarehouseID)
		} else {
			source, err = levelRepo.GetForUpdate(ctx, input.ProductID, input.WarehouseID)
		}
		if err != nil {
			return err
		}

		switch input.Type {
		case entity.MovementTypeIn, entity.MovementTypeAdjustment:
			source.Quantity += input.Quantity

		case entity.MovementTypeOut:
			if source.Quantity < input.Quantity {
				return domain.ErrInsufficientStock
			}
			source.Quantity -= input.Quantity

		case entity.MovementTypeTransfer:
			if source.Quantity < input.Quantity {
				return domain.ErrInsufficientStock
			}
			source.Quantity -= input.Quantity
			target.Quantity += input.Quantity
			target.UpdatedAt = now
		}

		if err := movementRepo.Create(ctx, movement); err != nil {
			return err
		}
		if err := upsertWithHints(ctx, levelRepo, source, input, now); err != nil {
			return err
		}
		if target != nil {
			if err := levelRepo.Upsert(ctx, target); err != nil {
				return err
			}
			targetAfter = target.Quantity
		}
		sourceAfter = source.Quantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(movement, sourceAfter, targetAfter, input)
	return movement, nil
}

// lockPair locks the source and target ledger rows of a transfer, always in
// warehouse-ID order. Opposing transfers on the same product would otherwise
// acquire the two locks in opposite orders and deadlock.
func lockPair(ctx context.Context, levelRepo repository.InventoryLevelRepository, productID, sourceWarehouseID, targetWarehouseID string) (source, target *entity.InventoryLevel, err error) {
	first, second := sourceWarehouseID, targetWarehouseID
	if second < first {
		first, second = second, first
	}
	a, err := levelRepo.GetForUpdate(ctx, productID, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := levelRepo.GetForUpdate(ctx, productID, second)
	if err != nil {
		return nil, nil, err
	}
	if first == sourceWarehouseID {
		return a, b, nil
	}
	return b, a, nil
}

// upsertWithHints writes the source row back, refreshing the row/shelf
// location hints when the request carries them.
func upsertWithHints(ctx context.Context, levelRepo repository.InventoryLevelRepository, level *entity.InventoryLevel, input MovementInput, now time.Time) error {
	if input.Row != "" {
		level.Row = input.Row
	}
	if input.Shelf != "" {
		level.Shelf = input.Shelf
	}
	level.UpdatedAt = now
	return levelRepo.Upsert(ctx, level)
}

// validate rejects malformed requests before any transaction starts and
// checks that the referenced product and warehouse(s) exist.
func (uc *RecordMovementUseCase) validate(ctx context.Context, input MovementInput) error {
	if input.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.WarehouseID == "" || input.UserID == "" {
		return domain.ErrInvalidInput
	}
	if input.Type == entity.MovementTypeTransfer {
		if input.TargetWarehouseID == "" {
			return domain.ErrMissingTargetWarehouse
		}
		if input.TargetWarehouseID == input.WarehouseID {
			return domain.ErrInvalidInput
		}
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	warehouse, err := uc.warehouseRepo.GetByID(ctx, input.WarehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if input.Type == entity.MovementTypeTransfer {
		target, err := uc.warehouseRepo.GetByID(ctx, input.TargetWarehouseID)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// publish emits the post-commit change events. A failed or slow subscriber
// never affects the committed movement.
func (uc *RecordMovementUseCase) publish(m *entity.StockMovement, sourceAfter, targetAfter int64, input MovementInput) {
	uc.notifier.Publish(event.New(event.TypeStockMovementCreated, event.EntityData{ID: m.ID}))
	uc.notifier.Publish(event.New(event.TypeInventoryUpdated, event.InventoryUpdatedData{
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Quantity:    sourceAfter,
		Row:         input.Row,
		Shelf:       input.Shelf,
	}))
	if m.Type == entity.MovementTypeTransfer {
		uc.notifier.Publish(event.New(event.TypeInventoryUpdated, event.InventoryUpdatedData{
			ProductID:   m.ProductID,
			WarehouseID: m.TargetWarehouseID,
			Quantity:    targetAfter,
		}))
	}
	uc.log.Debug().
		Str("movement_id", m.ID).
		Str("type", m.Type).
		Int64("quantity", m.Quantity).
		Msg("movement recorded")
}
