package client

import (
	"strings"
	"unicode/utf8"

	"taskboard/pkg/task"
)

const (
	MinTitleLen       = 3
	MinDescriptionLen = 10
)

// Form is the create/edit dialog input.
type Form struct {
	Title       string
	Description string
	Status      task.Status
}

// FormErrors maps a field name to its message. Empty means valid.
type FormErrors map[string]string

// FormFromTask prefills a form for editing t.
func FormFromTask(t task.Task) Form {
	f := Form{Title: t.Title, Status: t.Status}
	if t.Description != nil {
		f.Description = *t.Description
	}
	return f
}

// Validate checks the form before anything is sent to the server.
func (f Form) Validate() FormErrors {
	errs := FormErrors{}
	if utf8.RuneCountInString(strings.TrimSpace(f.Title)) < MinTitleLen {
		errs["title"] = "Title must be at least 3 characters"
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Description)) < MinDescriptionLen {
		errs["description"] = "Description must be at least 10 characters"
	}
	if !f.Status.Valid() {
		errs["status"] = "Status is required"
	}
	return errs
}

// Fields converts a valid form into create input.
func (f Form) Fields() task.Fields {
	desc := strings.TrimSpace(f.Description)
	return task.Fields{
		Title:       strings.TrimSpace(f.Title),
		Description: &desc,
		Status:      f.Status,
	}
}

// Patch converts a valid form into a full update.
func (f Form) Patch() task.Patch {
	fields := f.Fields()
	return task.Patch{
		Title:       &fields.Title,
		Description: fields.Description,
		Status:      &fields.Status,
	}
}
