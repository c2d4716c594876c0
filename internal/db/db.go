// Package db opens the shared PostgreSQL connection pool.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pool for databaseURL and waits until the server answers a
// ping, retrying once per second up to attempts times.
func Connect(ctx context.Context, databaseURL string, attempts int, log lgr.L) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, strings.TrimSpace(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	for i := 1; ; i++ {
		err = pool.Ping(ctx)
		if err == nil {
			return pool, nil
		}
		if i >= attempts {
			break
		}
		log.Logf("[WARN] waiting for postgres (attempt %d/%d): %v", i, attempts, err)
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	pool.Close()
	return nil, fmt.Errorf("ping postgres: %w", err)
}
