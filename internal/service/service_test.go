package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"taskboard/pkg/task"
)

// --- Mock task store ---

type listCall struct{ skip, take int }

type mockTaskStore struct {
	tasks     map[string]task.Task
	listCalls []listCall
	calls     int
	err       error
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{tasks: make(map[string]task.Task)}
}

func (s *mockTaskStore) EnsureTable(_ context.Context) error { return nil }

func (s *mockTaskStore) List(_ context.Context, skip, take int) ([]task.Task, error) {
	s.calls++
	s.listCalls = append(s.listCalls, listCall{skip, take})
	if s.err != nil {
		return nil, s.err
	}
	return nil, nil
}

func (s *mockTaskStore) Get(_ context.Context, id string) (*task.Task, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *mockTaskStore) Create(_ context.Context, f task.Fields) (*task.Task, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	t := task.New("1", f, time.Now())
	s.tasks[t.ID] = t
	return &t, nil
}

func (s *mockTaskStore) Update(_ context.Context, id string, p task.Patch) (*task.Task, error) {
	s.calls++
	t, ok := s.tasks[id]
	if !ok {
		return nil, task.ErrNotFound
	}
	t = p.Apply(t)
	s.tasks[id] = t
	return &t, nil
}

func (s *mockTaskStore) Delete(_ context.Context, id string) (*task.Task, error) {
	s.calls++
	t, ok := s.tasks[id]
	if !ok {
		return nil, task.ErrNotFound
	}
	delete(s.tasks, id)
	return &t, nil
}

func TestGetTasksRejectsBadBoundsWithoutStoreCall(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
	}{
		{"zero page", 0, 10},
		{"negative page", -3, 10},
		{"zero limit", 1, 0},
		{"negative limit", 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockTaskStore()
			svc := New(store)
			_, err := svc.GetTasks(context.Background(), tt.page, tt.limit)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("GetTasks(%d, %d) error = %v, want ErrInvalidArgument", tt.page, tt.limit, err)
			}
			if store.calls != 0 {
				t.Fatalf("store called %d times, want 0", store.calls)
			}
		})
	}
}

func TestGetTasksComputesSkipTake(t *testing.T) {
	tests := []struct {
		page, limit int
		want        listCall
	}{
		{1, 10, listCall{0, 10}},
		{2, 10, listCall{10, 10}},
		{3, 8, listCall{16, 8}},
		{7, 1, listCall{6, 1}},
	}
	for _, tt := range tests {
		store := newMockTaskStore()
		got, err := New(store).GetTasks(context.Background(), tt.page, tt.limit)
		if err != nil {
			t.Fatalf("GetTasks(%d, %d) error = %v", tt.page, tt.limit, err)
		}
		if got == nil {
			t.Fatalf("GetTasks(%d, %d) returned nil slice", tt.page, tt.limit)
		}
		if len(store.listCalls) != 1 || store.listCalls[0] != tt.want {
			t.Fatalf("GetTasks(%d, %d) store calls = %+v, want [%+v]", tt.page, tt.limit, store.listCalls, tt.want)
		}
	}
}

func TestGetTasksOffsetOverflowIsEmptyPage(t *testing.T) {
	tests := []struct{ page, limit int }{
		{3, math.MaxInt/2 + 1},
		{math.MaxInt, 2},
		{math.MaxInt, math.MaxInt},
	}
	for _, tt := range tests {
		store := newMockTaskStore()
		got, err := New(store).GetTasks(context.Background(), tt.page, tt.limit)
		if err != nil {
			t.Fatalf("GetTasks(%d, %d) error = %v", tt.page, tt.limit, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("GetTasks(%d, %d) = %v, want empty slice", tt.page, tt.limit, got)
		}
		if store.calls != 0 {
			t.Fatalf("GetTasks(%d, %d) called store %d times, want 0", tt.page, tt.limit, store.calls)
		}
	}

	// the largest offset that still fits reaches the store
	store := newMockTaskStore()
	if _, err := New(store).GetTasks(context.Background(), 2, math.MaxInt); err != nil {
		t.Fatalf("GetTasks(2, MaxInt) error = %v", err)
	}
	if want := (listCall{math.MaxInt, math.MaxInt}); len(store.listCalls) != 1 || store.listCalls[0] != want {
		t.Fatalf("store calls = %+v, want [%+v]", store.listCalls, want)
	}
}

func TestGetTasksPropagatesStoreError(t *testing.T) {
	store := newMockTaskStore()
	store.err = errors.New("database error")
	if _, err := New(store).GetTasks(context.Background(), 1, 10); !errors.Is(err, store.err) {
		t.Fatalf("GetTasks() error = %v, want %v", err, store.err)
	}
}

func TestGetTaskByID(t *testing.T) {
	store := newMockTaskStore()
	store.tasks["1"] = task.Task{ID: "1", Title: "Task 1", Status: task.StatusPending}
	svc := New(store)
	ctx := context.Background()

	if _, err := svc.GetTaskByID(ctx, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("GetTaskByID(\"\") error = %v, want ErrInvalidArgument", err)
	}
	if store.calls != 0 {
		t.Fatalf("store called for empty id")
	}

	if _, err := svc.GetTaskByID(ctx, "999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetTaskByID(999) error = %v, want ErrNotFound", err)
	}

	got, err := svc.GetTaskByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetTaskByID(1) error = %v", err)
	}
	if got.Title != "Task 1" {
		t.Fatalf("GetTaskByID(1) = %+v", got)
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	store := newMockTaskStore()
	svc := New(store)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, task.Fields{
		Title:       "New Task",
		Description: task.StringPtr("New Desc"),
		Status:      task.StatusPending,
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if created.ID == "" || created.Title != "New Task" || *created.Description != "New Desc" {
		t.Fatalf("CreateTask() = %+v", created)
	}

	updated, err := svc.UpdateTask(ctx, created.ID, task.Patch{Title: task.StringPtr("Updated")})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.Title != "Updated" || *updated.Description != "New Desc" || updated.Status != task.StatusPending {
		t.Fatalf("UpdateTask() = %+v", updated)
	}

	if _, err := svc.UpdateTask(ctx, "missing", task.Patch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateTask(missing) error = %v, want ErrNotFound", err)
	}

	deleted, err := svc.DeleteTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("DeleteTask() = %+v", deleted)
	}
	if _, err := svc.GetTaskByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetTaskByID after delete error = %v, want ErrNotFound", err)
	}
	if _, err := svc.DeleteTask(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteTask(again) error = %v, want ErrNotFound", err)
	}
}
