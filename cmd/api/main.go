package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/analytics"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/inventory"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/usecase"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/d2much2/WarehouseTracker-1-sub000/internal/interfaces/http"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/interfaces/ws"
	"github.com/d2much2/WarehouseTracker-1-sub000/pkg/config"
	"github.com/d2much2/WarehouseTracker-1-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	levelRepo := postgres.NewInventoryLevelRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	hub := ws.NewHub(log)
	go hub.Run()

	recordMovementUC := inventory.NewRecordMovementUseCase(txRunner, productRepo, warehouseRepo, hub, log)
	inventoryQueryUC := inventory.NewQueryUseCase(levelRepo, movementRepo)
	productUC := usecase.NewProductUseCase(productRepo, hub)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, hub)
	dashboardUC := analytics.NewDashboardUseCase(levelRepo, productRepo, warehouseRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		WarehouseUC:    warehouseUC,
		RecordMovement: recordMovementUC,
		InventoryQuery: inventoryQueryUC,
		DashboardUC:    dashboardUC,
		Hub:            hub,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
