// Package output provides formatters for taskctl output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"taskboard/pkg/task"
)

var (
	pendingColor    = color.New(color.FgYellow)
	inProgressColor = color.New(color.FgCyan)
	completedColor  = color.New(color.FgGreen)
	headerColor     = color.New(color.Bold)
)

// statusWidth fits the longest status, IN_PROGRESS.
const statusWidth = 11

// FormatHeader writes the column header for FormatTask rows.
func FormatHeader(w io.Writer) {
	headerColor.Fprintf(w, "%-36s  %-*s  %s\n", "ID", statusWidth, "STATUS", "TITLE")
}

// FormatTask writes one list row.
// Format: "{ID:<36}  {STATUS:<11}  {TITLE}\n"
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "%-36s  %s  %s\n", t.ID, statusCell(t.Status), normalizeTitle(t.Title))
}

// FormatDetail writes every field of t, one per line.
func FormatDetail(w io.Writer, t task.Task) {
	desc := "(none)"
	if t.Description != nil {
		desc = *t.Description
	}
	fmt.Fprintf(w, "ID:          %s\n", t.ID)
	fmt.Fprintf(w, "Title:       %s\n", normalizeTitle(t.Title))
	fmt.Fprintf(w, "Description: %s\n", desc)
	fmt.Fprintf(w, "Status:      %s\n", Status(t.Status))
	fmt.Fprintf(w, "Created:     %s\n", t.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Updated:     %s\n", t.UpdatedAt.UTC().Format(time.RFC3339))
}

// Status renders s colored by state.
func Status(s task.Status) string {
	return colorize(s, string(s))
}

// statusCell pads before coloring so escape codes don't break alignment.
func statusCell(s task.Status) string {
	return colorize(s, fmt.Sprintf("%-*s", statusWidth, s))
}

func colorize(s task.Status, text string) string {
	switch s {
	case task.StatusPending:
		return pendingColor.Sprint(text)
	case task.StatusInProgress:
		return inProgressColor.Sprint(text)
	case task.StatusCompleted:
		return completedColor.Sprint(text)
	}
	return text
}

// normalizeTitle keeps a row on one line.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
