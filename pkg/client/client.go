// Package client talks to the task API and keeps the client-side view of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taskboard/pkg/task"
)

// DefaultBaseURL is the /tasks group of a locally running server.
const DefaultBaseURL = "http://localhost:8000/tasks"

// DefaultTimeout bounds each request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// APIError is a response from the server with a non-2xx status.
// Message is the server's "message" field and may be empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// Client is an HTTP client for the /tasks endpoints.
type Client struct {
	base string
	http *http.Client
}

// New returns a Client rooted at baseURL, e.g. "http://localhost:8000/tasks".
// A nil hc uses a client with DefaultTimeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: hc,
	}
}

// ListTasks fetches one page of tasks.
func (c *Client) ListTasks(ctx context.Context, page, limit int) ([]task.Task, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var tasks []task.Task
	if err := c.do(ctx, http.MethodGet, c.base+"?"+q.Encode(), nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*task.Task, error) {
	var t task.Task
	if err := c.do(ctx, http.MethodGet, c.taskURL(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) CreateTask(ctx context.Context, f task.Fields) (*task.Task, error) {
	body := map[string]any{"title": f.Title}
	if f.Description != nil {
		body["description"] = *f.Description
	}
	if f.Status != "" {
		body["status"] = f.Status
	}
	var t task.Task
	if err := c.do(ctx, http.MethodPost, c.base, body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, p task.Patch) (*task.Task, error) {
	body := map[string]any{}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.Status != nil {
		body["status"] = *p.Status
	}
	var t task.Task
	if err := c.do(ctx, http.MethodPut, c.taskURL(id), body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTask deletes a task and returns the record as it was.
func (c *Client) DeleteTask(ctx context.Context, id string) (*task.Task, error) {
	var t task.Task
	if err := c.do(ctx, http.MethodDelete, c.taskURL(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) taskURL(id string) string {
	return c.base + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, u string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return nil
}

// errorMessage pulls "message" out of an error body. Validation errors
// from some servers carry a list of messages; those are joined.
func errorMessage(raw []byte) string {
	var body struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Message) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Message, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(body.Message, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return ""
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
