// Package storetest holds the behavioral suite every task.Store must pass.
package storetest

import (
	"context"
	"errors"
	"math"
	"testing"

	"taskboard/pkg/task"
)

// Run exercises store against the task.Store contract. newStore must
// return an empty store with its schema in place.
func Run(t *testing.T, newStore func(t *testing.T) task.Store) {
	t.Helper()

	t.Run("CreateAssignsIDAndDefaults", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		got, err := s.Create(ctx, task.Fields{Title: "New Task"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if got.ID == "" {
			t.Fatalf("Create() returned empty id")
		}
		if got.Status != task.StatusPending {
			t.Fatalf("Status = %q, want %q", got.Status, task.StatusPending)
		}
		if got.Description != nil {
			t.Fatalf("Description = %q, want nil", *got.Description)
		}
		if got.CreatedAt.IsZero() || !got.CreatedAt.Equal(got.UpdatedAt) {
			t.Fatalf("timestamps = %v / %v, want equal and non-zero", got.CreatedAt, got.UpdatedAt)
		}
	})

	t.Run("CreateThenGetRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, task.Fields{
			Title:       "New Task",
			Description: task.StringPtr("New Desc"),
			Status:      task.StatusInProgress,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		got, err := s.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		assertSame(t, *got, *created)
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "missing")
		if !errors.Is(err, task.ErrNotFound) {
			t.Fatalf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("UpdateChangesOnlyPatchedFields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		before, err := s.Create(ctx, task.Fields{Title: "Task 1", Description: task.StringPtr("Desc 1")})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		got, err := s.Update(ctx, before.ID, task.Patch{Title: task.StringPtr("Updated")})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		want := *before
		want.Title = "Updated"
		want.UpdatedAt = got.UpdatedAt
		assertSame(t, *got, want)
		if got.UpdatedAt.Before(before.UpdatedAt) {
			t.Fatalf("UpdatedAt went backwards: %v < %v", got.UpdatedAt, before.UpdatedAt)
		}

		status, err := s.Update(ctx, before.ID, task.Patch{Status: task.StatusPtr(task.StatusCompleted)})
		if err != nil {
			t.Fatalf("Update(status) error = %v", err)
		}
		if status.Status != task.StatusCompleted || status.Title != "Updated" {
			t.Fatalf("Update(status) = %+v", status)
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Update(context.Background(), "missing", task.Patch{Title: task.StringPtr("x")})
		if !errors.Is(err, task.ErrNotFound) {
			t.Fatalf("Update() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteReturnsRecord", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, task.Fields{Title: "Doomed"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		deleted, err := s.Delete(ctx, created.ID)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		assertSame(t, *deleted, *created)

		if _, err := s.Get(ctx, created.ID); !errors.Is(err, task.ErrNotFound) {
			t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
		}
		if _, err := s.Delete(ctx, created.ID); !errors.Is(err, task.ErrNotFound) {
			t.Fatalf("second Delete() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListPaginatesInCreationOrder", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var ids []string
		for _, title := range []string{"a", "b", "c", "d", "e"} {
			created, err := s.Create(ctx, task.Fields{Title: title})
			if err != nil {
				t.Fatalf("Create(%s) error = %v", title, err)
			}
			ids = append(ids, created.ID)
		}

		tests := []struct {
			skip, take int
			want       []string
		}{
			{0, 2, ids[0:2]},
			{2, 2, ids[2:4]},
			{4, 2, ids[4:5]},
			{6, 2, nil},
			{0, 10, ids},
			{3, math.MaxInt, ids[3:5]},
		}
		for _, tt := range tests {
			got, err := s.List(ctx, tt.skip, tt.take)
			if err != nil {
				t.Fatalf("List(%d, %d) error = %v", tt.skip, tt.take, err)
			}
			if got == nil {
				t.Fatalf("List(%d, %d) returned nil slice", tt.skip, tt.take)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List(%d, %d) len = %d, want %d", tt.skip, tt.take, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Fatalf("List(%d, %d)[%d] = %s, want %s", tt.skip, tt.take, i, got[i].ID, tt.want[i])
				}
			}
		}
	})
}

func assertSame(t *testing.T, got, want task.Task) {
	t.Helper()
	if got.ID != want.ID || got.Title != want.Title || got.Status != want.Status {
		t.Fatalf("task = %+v, want %+v", got, want)
	}
	if (got.Description == nil) != (want.Description == nil) {
		t.Fatalf("description = %v, want %v", got.Description, want.Description)
	}
	if got.Description != nil && *got.Description != *want.Description {
		t.Fatalf("description = %q, want %q", *got.Description, *want.Description)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("createdAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Fatalf("updatedAt = %v, want %v", got.UpdatedAt, want.UpdatedAt)
	}
}
