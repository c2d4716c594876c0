// Package storage opens the task.Store selected by configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/pkg/task"
	"taskboard/pkg/task/sqlite"
)

// Open returns the configured store with its schema in place, plus a
// function releasing the underlying resources.
func Open(ctx context.Context, cfg config.Config, log lgr.L) (task.Store, func(), error) {
	var (
		store   task.Store
		release = func() {}
	)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DBConnectAttempts, log)
		if err != nil {
			return nil, nil, err
		}
		store = task.NewPgStore(pool)
		release = pool.Close
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store = s
		release = func() {
			if err := s.Close(); err != nil {
				log.Logf("[WARN] close sqlite: %v", err)
			}
		}
	case config.DriverMemory:
		store = task.NewMemStore()
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if err := store.EnsureTable(ctx); err != nil {
		release()
		return nil, nil, fmt.Errorf("ensure tasks table: %w", err)
	}
	log.Logf("[INFO] task store ready: %s", cfg.StoreDriver)
	return store, release, nil
}
