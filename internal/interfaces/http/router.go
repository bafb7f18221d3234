package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/analytics"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/dto"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/inventory"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/usecase"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/interfaces/ws"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	RecordMovement *inventory.RecordMovementUseCase
	InventoryQuery *inventory.QueryUseCase
	DashboardUC    *analytics.DashboardUseCase
	Hub            *ws.Hub
}

// internalError generic 500 without leaking storage internals.
func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "unexpected error",
	})
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	inventoryHandler := NewInventoryHandler(deps.RecordMovement, deps.InventoryQuery)
	api.Post("/movements", inventoryHandler.CreateMovement)
	api.Get("/movements", inventoryHandler.ListMovements)
	api.Get("/inventory/product/:id", inventoryHandler.InventoryByProduct)
	api.Get("/inventory/warehouse/:id", inventoryHandler.InventoryByWarehouse)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/alerts/low-stock", dashboardHandler.LowStockAlerts)
	api.Get("/dashboard/kpis", dashboardHandler.KPIs)

	// Real-time change feed.
	if deps.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(deps.Hub.Handler()))
	}
}
