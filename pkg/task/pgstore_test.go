package task_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard/pkg/task"
	"taskboard/pkg/task/storetest"
)

// TestPgStore runs against a real database; set TEST_DATABASE_URL to enable it.
func TestPgStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	storetest.Run(t, func(t *testing.T) task.Store {
		s := task.NewPgStore(pool)
		if err := s.EnsureTable(ctx); err != nil {
			t.Fatalf("EnsureTable() error = %v", err)
		}
		if _, err := pool.Exec(ctx, `TRUNCATE tasks`); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return s
	})
}
