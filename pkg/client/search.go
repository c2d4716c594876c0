package client

import (
	"strings"

	"golang.org/x/text/cases"

	"taskboard/pkg/task"
)

// PageSize is how many tasks the front-ends request per page.
const PageSize = 8

// FilterByTitle keeps tasks whose title contains query, ignoring case.
// An empty query keeps everything.
func FilterByTitle(tasks []task.Task, query string) []task.Task {
	query = strings.TrimSpace(query)
	if query == "" {
		return tasks
	}
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(fold.String(t.Title), needle) {
			out = append(out, t)
		}
	}
	return out
}

// HasNextPage reports whether "next" should be enabled for a page that
// came back with n visible tasks.
func HasNextPage(n, limit int) bool {
	return n >= limit
}

// PrevPage floors at 1.
func PrevPage(page int) int {
	if page <= 1 {
		return 1
	}
	return page - 1
}
