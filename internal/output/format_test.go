package output

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"

	"taskboard/pkg/task"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, task.Task{
		ID:     "0190a6c4-1c2b-7d3e-8f40-123456789abc",
		Title:  "Write\nreport",
		Status: task.StatusInProgress,
	})
	want := "0190a6c4-1c2b-7d3e-8f40-123456789abc  IN_PROGRESS  Write report\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}

	buf.Reset()
	FormatTask(&buf, task.Task{ID: "1", Title: "  ", Status: task.StatusPending})
	want = "1                                     PENDING      (untitled)\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatHeader(&buf)
	want := "ID                                    STATUS       TITLE\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatDetail(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	var buf bytes.Buffer
	FormatDetail(&buf, task.Task{
		ID:          "42",
		Title:       "Buy milk",
		Description: task.StringPtr("Two litres"),
		Status:      task.StatusCompleted,
		CreatedAt:   ts,
		UpdatedAt:   ts.Add(time.Hour),
	})
	want := "ID:          42\n" +
		"Title:       Buy milk\n" +
		"Description: Two litres\n" +
		"Status:      COMPLETED\n" +
		"Created:     2024-05-01T12:30:00Z\n" +
		"Updated:     2024-05-01T13:30:00Z\n"
	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}

	buf.Reset()
	FormatDetail(&buf, task.Task{ID: "1", Title: "x", Status: task.StatusPending})
	if !bytes.Contains(buf.Bytes(), []byte("Description: (none)\n")) {
		t.Errorf("nil description not rendered as (none): %q", buf.String())
	}
}
