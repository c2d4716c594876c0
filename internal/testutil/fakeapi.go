// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"net/http"

	"taskboard/pkg/client"
	"taskboard/pkg/task"
)

// FakeAPI is an in-memory client.API backed by task.MemStore. It answers
// with the same *client.APIError values the real server would.
type FakeAPI struct {
	store *task.MemStore

	// Error injection for testing
	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// Last arguments seen
	LastPage, LastLimit int
	LastFields          task.Fields
	LastPatch           task.Patch
}

// NewFakeAPI creates an empty FakeAPI.
func NewFakeAPI() *FakeAPI {
	return &FakeAPI{store: task.NewMemStore()}
}

// Add creates a task directly in the backing store.
func (f *FakeAPI) Add(title string, status task.Status) task.Task {
	t, err := f.store.Create(context.Background(), task.Fields{Title: title, Status: status})
	if err != nil {
		panic(err)
	}
	return *t
}

func (f *FakeAPI) ListTasks(ctx context.Context, page, limit int) ([]task.Task, error) {
	f.LastPage, f.LastLimit = page, limit
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.store.List(ctx, (page-1)*limit, limit)
}

func (f *FakeAPI) GetTask(ctx context.Context, id string) (*task.Task, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return wrap(f.store.Get(ctx, id))
}

func (f *FakeAPI) CreateTask(ctx context.Context, fields task.Fields) (*task.Task, error) {
	f.LastFields = fields
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	return wrap(f.store.Create(ctx, fields))
}

func (f *FakeAPI) UpdateTask(ctx context.Context, id string, p task.Patch) (*task.Task, error) {
	f.LastPatch = p
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return wrap(f.store.Update(ctx, id, p))
}

func (f *FakeAPI) DeleteTask(ctx context.Context, id string) (*task.Task, error) {
	if f.DeleteErr != nil {
		return nil, f.DeleteErr
	}
	return wrap(f.store.Delete(ctx, id))
}

func wrap(t *task.Task, err error) (*task.Task, error) {
	if errors.Is(err, task.ErrNotFound) {
		return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "Task not found"}
	}
	return t, err
}
