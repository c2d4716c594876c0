package client

import (
	"fmt"

	"taskboard/pkg/task"
)

// DeleteConfirm holds the task awaiting delete confirmation. Nothing is
// deleted until Confirm hands the id back to the caller.
type DeleteConfirm struct {
	target *task.Task
}

// Request asks to delete t, replacing any earlier pending request.
func (c *DeleteConfirm) Request(t task.Task) {
	c.target = &t
}

// Pending reports whether a request is waiting for an answer.
func (c *DeleteConfirm) Pending() bool {
	return c.target != nil
}

// Prompt is the question shown to the user.
func (c *DeleteConfirm) Prompt() string {
	if c.target == nil {
		return ""
	}
	return fmt.Sprintf("Delete %q? This cannot be undone.", c.target.Title)
}

// Confirm clears the request and returns the id to delete.
func (c *DeleteConfirm) Confirm() (string, bool) {
	if c.target == nil {
		return "", false
	}
	id := c.target.ID
	c.target = nil
	return id, true
}

// Cancel drops the request.
func (c *DeleteConfirm) Cancel() {
	c.target = nil
}
