package task

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Store when no task has the requested ID.
var ErrNotFound = errors.New("task not found")

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Task represents a unit of work.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Fields are the caller-supplied values for a new task. ID and timestamps
// are always assigned by the store.
type Fields struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      Status  `json:"status,omitempty"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Apply returns a copy of t with the patch applied. Timestamps are not touched.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		t.Description = &d
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}

// New builds a task from fields with the given id and creation time.
// An empty status defaults to PENDING.
func New(id string, f Fields, now time.Time) Task {
	t := Task{
		ID:        id,
		Title:     f.Title,
		Status:    f.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if f.Description != nil {
		d := *f.Description
		t.Description = &d
	}
	return t
}

// Store is the contract for task persistence.
// List returns tasks in creation order (createdAt, then id).
type Store interface {
	List(ctx context.Context, skip, take int) ([]Task, error)
	Get(ctx context.Context, id string) (*Task, error)
	Create(ctx context.Context, f Fields) (*Task, error)
	Update(ctx context.Context, id string, p Patch) (*Task, error)
	Delete(ctx context.Context, id string) (*Task, error)
	EnsureTable(ctx context.Context) error
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// StatusPtr returns a pointer to s.
func StatusPtr(s Status) *Status { return &s }
