// Package service translates API-level task operations into store calls.
// It enforces pagination bounds and turns absent records into ErrNotFound;
// field-level validation belongs to the HTTP boundary.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"taskboard/pkg/task"
)

var (
	// ErrInvalidArgument marks caller mistakes detected before the store is touched.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when the requested task does not exist.
	ErrNotFound = task.ErrNotFound
)

// Service is the task use-case layer.
type Service struct {
	store task.Store
}

// New creates a Service backed by store.
func New(store task.Store) *Service {
	return &Service{store: store}
}

// GetTasks returns page (1-based) of at most limit tasks.
func (s *Service) GetTasks(ctx context.Context, page, limit int) ([]task.Task, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be greater than 0", ErrInvalidArgument)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be greater than 0", ErrInvalidArgument)
	}
	// Offsets beyond int range are past any stored row.
	if page-1 > math.MaxInt/limit {
		return []task.Task{}, nil
	}
	tasks, err := s.store.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// GetTaskByID returns the task with the given id.
func (s *Service) GetTaskByID(ctx context.Context, id string) (*task.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty task id", ErrInvalidArgument)
	}
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("get task %s: %w", id, ErrNotFound)
	}
	return t, nil
}

// CreateTask stores a new task. Fields are passed through unchanged.
func (s *Service) CreateTask(ctx context.Context, f task.Fields) (*task.Task, error) {
	return s.store.Create(ctx, f)
}

// UpdateTask applies p to the task with the given id.
func (s *Service) UpdateTask(ctx context.Context, id string, p task.Patch) (*task.Task, error) {
	return s.store.Update(ctx, id, p)
}

// DeleteTask removes the task with the given id and returns it.
func (s *Service) DeleteTask(ctx context.Context, id string) (*task.Task, error) {
	return s.store.Delete(ctx, id)
}
