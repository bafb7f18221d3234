package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/dto"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/inventory"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
	"github.com/d2much2/WarehouseTracker-1-sub000/pkg/validator"
)

// InventoryHandler handles movement recording and ledger/journal queries.
type InventoryHandler struct {
	recorder *inventory.RecordMovementUseCase
	query    *inventory.QueryUseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(recorder *inventory.RecordMovementUseCase, query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{recorder: recorder, query: query}
}

// CreateMovement POST /api/movements. Business-rule violations come back as
// 400 with a stable code; unexpected storage failures as a generic 500.
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "field " + errs[0].Field + " failed on " + errs[0].Tag,
		})
	}

	movement, err := h.recorder.RecordFromRequest(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
		case errors.Is(err, domain.ErrMissingTargetWarehouse):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TARGET_WAREHOUSE", Message: err.Error()})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product or warehouse not found"})
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementFromEntity(movement))
}

// ListMovements GET /api/movements?productId&warehouseId&type, newest first.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query parameters"})
	}
	page.DefaultPage()

	movements, err := h.query.Movements(c.Context(), repository.MovementFilter{
		ProductID:   c.Query("productId"),
		WarehouseID: c.Query("warehouseId"),
		Type:        c.Query("type"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return internalError(c)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementFromEntity(m))
	}
	return c.JSON(out)
}

// InventoryByProduct GET /api/inventory/product/:id.
func (h *InventoryHandler) InventoryByProduct(c *fiber.Ctx) error {
	levels, err := h.query.LevelsByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return internalError(c)
	}
	return c.JSON(levelsToResponse(levels))
}

// InventoryByWarehouse GET /api/inventory/warehouse/:id.
func (h *InventoryHandler) InventoryByWarehouse(c *fiber.Ctx) error {
	levels, err := h.query.LevelsByWarehouse(c.Context(), c.Params("id"))
	if err != nil {
		return internalError(c)
	}
	return c.JSON(levelsToResponse(levels))
}

func levelsToResponse(levels []*entity.InventoryLevel) []dto.InventoryLevelResponse {
	out := make([]dto.InventoryLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.LevelFromEntity(l))
	}
	return out
}
