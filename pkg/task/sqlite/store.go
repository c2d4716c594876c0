// Package sqlite implements task.Store on top of an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlitedb "github.com/agalitsyn/sqlite"
	"github.com/google/uuid"

	"taskboard/pkg/task"
)

//go:embed *.sql
var migrations embed.FS

// timeLayout is fixed-width so that lexical order on the column equals time order.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

const taskColumns = `id, title, description, status, created_at, updated_at`

// Store is a SQLite-backed task store.
type Store struct {
	db *sql.DB
}

// Open connects to the database file at path.
func Open(path string) (*Store, error) {
	db, err := sqlitedb.Connect(path)
	if err != nil {
		return nil, err
	}
	// a single writer avoids SQLITE_BUSY under concurrent requests
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureTable applies pending migrations.
func (s *Store) EnsureTable(_ context.Context) error {
	if err := sqlitedb.MigrateUp(s.db, migrations); err != nil {
		return fmt.Errorf("migrate tasks schema: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, f task.Fields) (*task.Task, error) {
	t := task.New(uuid.Must(uuid.NewV7()).String(), f, now())

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, nullString(t.Description), string(t.Status),
		t.CreatedAt.Format(timeLayout), t.UpdatedAt.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}
	return &t, nil
}

func (s *Store) Get(ctx context.Context, id string) (*task.Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("could not get task %s: %w", id, err)
	}
	return t, nil
}

func (s *Store) Update(ctx context.Context, id string, p task.Patch) (*task.Task, error) {
	sets := []string{"updated_at = ?"}
	args := []any{now().Format(timeLayout)}

	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*p.Status))
	}
	args = append(args, id)

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ? RETURNING ` + taskColumns
	t, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("could not update task %s: %w", id, err)
	}
	return t, nil
}

func (s *Store) Delete(ctx context.Context, id string) (*task.Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx, `DELETE FROM tasks WHERE id = ? RETURNING `+taskColumns, id))
	if err != nil {
		return nil, fmt.Errorf("could not remove task %s: %w", id, err)
	}
	return t, nil
}

func (s *Store) List(ctx context.Context, skip, take int) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`, take, skip)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return tasks, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*task.Task, error) {
	var (
		t                    task.Task
		description          sql.NullString
		status               string
		createdAt, updatedAt string
	)
	if err := row.Scan(&t.ID, &t.Title, &description, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrNotFound
		}
		return nil, err
	}
	if description.Valid {
		t.Description = &description.String
	}
	t.Status = task.Status(status)

	var err error
	if t.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
