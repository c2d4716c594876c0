package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-process task store for local/dev use and tests.
type MemStore struct {
	mu    sync.RWMutex
	order []string
	tasks map[string]Task
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{tasks: make(map[string]Task)}
}

func (s *MemStore) EnsureTable(_ context.Context) error { return nil }

func (s *MemStore) Create(_ context.Context, f Fields) (*Task, error) {
	t := New(uuid.Must(uuid.NewV7()).String(), f, time.Now().UTC().Truncate(time.Microsecond))
	if t.Title == "" {
		return nil, fmt.Errorf("create task: title is required")
	}
	if !t.Status.Valid() {
		return nil, fmt.Errorf("create task: invalid status %q", t.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	return clone(t), nil
}

func (s *MemStore) Get(_ context.Context, id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("get task %s: %w", id, ErrNotFound)
	}
	return clone(t), nil
}

func (s *MemStore) Update(_ context.Context, id string, p Patch) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("update task %s: %w", id, ErrNotFound)
	}
	t = p.Apply(t)
	if !t.Status.Valid() {
		return nil, fmt.Errorf("update task %s: invalid status %q", id, t.Status)
	}
	t.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	s.tasks[id] = t
	return clone(t), nil
}

func (s *MemStore) Delete(_ context.Context, id string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("delete task %s: %w", id, ErrNotFound)
	}
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return clone(t), nil
}

func (s *MemStore) List(_ context.Context, skip, take int) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Task{}
	if skip < 0 {
		skip = 0
	}
	if skip >= len(s.order) {
		return out, nil
	}
	end := len(s.order)
	if take > 0 && take < end-skip {
		end = skip + take
	}
	for _, id := range s.order[skip:end] {
		out = append(out, *clone(s.tasks[id]))
	}
	return out, nil
}

// clone copies t so callers never share the description pointer with the store.
func clone(t Task) *Task {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	return &t
}
