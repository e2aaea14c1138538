// Package app opens the volatile finance store described by the
// configuration and fills it with mock data.
package app

import (
	"fmt"
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/config"
	"github.com/caioogatalabs/dashboard-workshop/internal/database"
	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
	"github.com/caioogatalabs/dashboard-workshop/internal/seed"
	"github.com/caioogatalabs/dashboard-workshop/internal/store"
)

// App is an open, migrated and optionally seeded store
type App struct {
	Config  *config.Config
	Manager *database.Manager
	Store   *store.FinanceStore
}

// Open creates the database, migrates it and seeds it when enabled. now
// anchors the generated transaction dates.
func Open(cfg *config.Config, now time.Time) (*App, error) {
	manager, err := database.NewManager(cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := manager.Migrate(); err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	st, err := store.New(manager.DB())
	if err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	a := &App{Config: cfg, Manager: manager, Store: st}
	if cfg.SeedEnabled {
		if err := a.seed(now); err != nil {
			_ = manager.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *App) seed(now time.Time) error {
	opts := seed.Options{
		Seed:         a.Config.SeedValue,
		Now:          now,
		IncomeCount:  a.Config.SeedIncomeCount,
		ExpenseCount: a.Config.SeedExpenseCount,
	}
	snap := seed.Generate(opts)
	if err := a.Store.Seed(snap); err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}

	logger.Get().Infow("seeded store",
		"seed", opts.Seed,
		"members", len(snap.Members),
		"transactions", len(snap.Transactions),
	)
	return nil
}

// Close releases the database. The in-memory data is gone afterwards.
func (a *App) Close() error {
	return a.Manager.Close()
}
