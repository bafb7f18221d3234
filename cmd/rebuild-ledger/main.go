// Command rebuild-ledger replays the stock-movement journal in creation
// order into a fresh inventory_levels table, inside one transaction. Run it
// when the ledger projection is suspected to have drifted from the journal.
package main

import (
	"context"
	"time"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/inventory"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/infrastructure/postgres"
	"github.com/d2much2/WarehouseTracker-1-sub000/pkg/config"
	"github.com/d2much2/WarehouseTracker-1-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	uc := inventory.NewRebuildLedgerUseCase(postgres.NewTxRunner(pool))

	start := time.Now()
	rows, orphaned, err := uc.Rebuild(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("ledger rebuild failed, nothing was changed")
	}
	log.Info().
		Int("ledger_rows", rows).
		Int("orphaned_rows", orphaned).
		Dur("elapsed", time.Since(start)).
		Msg("ledger rebuilt from journal")
}
