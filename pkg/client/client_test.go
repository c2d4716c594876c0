package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-pkgz/lgr"

	"taskboard/internal/api"
	"taskboard/internal/config"
	"taskboard/internal/observability"
	"taskboard/internal/service"
	"taskboard/pkg/task"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{CORSOrigin: "http://localhost:3000", StoreDriver: config.DriverMemory}
	srv := api.New(cfg, service.New(task.NewMemStore()), observability.NewMetrics("client_test"), lgr.NoOp)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func TestClientAgainstServer(t *testing.T) {
	ts := newAPIServer(t)
	c := New(ts.URL+"/tasks/", nil)
	ctx := context.Background()

	created, err := c.CreateTask(ctx, task.Fields{
		Title:       "Write report",
		Description: task.StringPtr("Quarterly numbers"),
		Status:      task.StatusInProgress,
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if created.ID == "" || created.Status != task.StatusInProgress {
		t.Fatalf("CreateTask() = %+v", created)
	}

	got, err := c.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if got.Title != "Write report" || *got.Description != "Quarterly numbers" {
		t.Fatalf("GetTask() = %+v", got)
	}

	updated, err := c.UpdateTask(ctx, created.ID, task.Patch{Status: task.StatusPtr(task.StatusCompleted)})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.Status != task.StatusCompleted || updated.Title != "Write report" {
		t.Fatalf("UpdateTask() = %+v", updated)
	}

	list, err := c.ListTasks(ctx, 1, 10)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("ListTasks() = %+v", list)
	}

	deleted, err := c.DeleteTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("DeleteTask() = %+v", deleted)
	}

	_, err = c.GetTask(ctx, created.ID)
	if !IsNotFound(err) {
		t.Fatalf("GetTask() after delete error = %v, want 404", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Task not found" {
		t.Fatalf("GetTask() after delete error = %#v", err)
	}

	empty, err := c.ListTasks(ctx, 5, 10)
	if err != nil {
		t.Fatalf("ListTasks(5) error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("ListTasks(5) = %#v, want empty slice", empty)
	}
}

func TestClientSurfacesServerMessage(t *testing.T) {
	ts := newAPIServer(t)
	c := New(ts.URL+"/tasks", nil)

	_, err := c.ListTasks(context.Background(), 0, 10)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("ListTasks(0) error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "Page must be greater than 0" {
		t.Fatalf("ListTasks(0) error = %+v", apiErr)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"statusCode":400,"message":"Invalid task ID","error":"Bad Request"}`, "Invalid task ID"},
		{`{"message":["title should not be empty","status must be an enum"]}`, "title should not be empty, status must be an enum"},
		{`{"error":"Bad Gateway"}`, ""},
		{`{"message":42}`, ""},
		{`<html>oops</html>`, ""},
		{``, ""},
	}
	for _, tt := range tests {
		if got := errorMessage([]byte(tt.body)); got != tt.want {
			t.Errorf("errorMessage(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestClientNonJSONSuccessBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).GetTask(context.Background(), "1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "" {
		t.Fatalf("GetTask() error = %v, want *APIError without message", err)
	}
}

func TestClientEscapesID(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"a/b","title":"x","description":null,"status":"PENDING"}`))
	}))
	defer ts.Close()

	if _, err := New(ts.URL+"/tasks", nil).GetTask(context.Background(), "a/b"); err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if gotPath != "/tasks/a%2Fb" {
		t.Fatalf("path = %q, want /tasks/a%%2Fb", gotPath)
	}
}
