package client

import (
	"testing"

	"taskboard/pkg/task"
)

func mkTask(id, title string) task.Task {
	return task.Task{ID: id, Title: title, Status: task.StatusPending}
}

func ids(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReducePendingClearsError(t *testing.T) {
	s := State{Error: "Failed to fetch tasks"}
	for _, op := range []Op{OpFetchTasks, OpCreateTask, OpFetchTask, OpUpdateTask, OpDeleteTask} {
		got := Reduce(s, PendingAction(op))
		if !got.Loading || got.Error != "" {
			t.Fatalf("%s pending = loading %v error %q", op, got.Loading, got.Error)
		}
	}
}

func TestReduceRejectedFallbacks(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpFetchTasks, "Failed to fetch tasks"},
		{OpCreateTask, "Failed to create task"},
		{OpFetchTask, "Failed to fetch task"},
		{OpUpdateTask, "Failed to update task"},
		{OpDeleteTask, "Failed to delete task"},
	}
	for _, tt := range tests {
		got := Reduce(State{Loading: true}, RejectedAction(tt.op, ""))
		if got.Loading || got.Error != tt.want {
			t.Fatalf("%s rejected = loading %v error %q, want %q", tt.op, got.Loading, got.Error, tt.want)
		}
	}

	got := Reduce(State{Loading: true}, RejectedAction(OpFetchTask, "Task not found"))
	if got.Error != "Task not found" {
		t.Fatalf("server message lost: %q", got.Error)
	}
}

func TestReduceFetchReplacesList(t *testing.T) {
	s := Reduce(State{}, TasksFetched([]task.Task{mkTask("1", "a"), mkTask("2", "b")}))
	s = Reduce(s, TasksFetched([]task.Task{mkTask("3", "c")}))
	if got := ids(s.Tasks()); !equalIDs(got, []string{"3"}) {
		t.Fatalf("Tasks() = %v, want [3]", got)
	}
	if s.Loading {
		t.Fatalf("loading still set")
	}
}

func TestReduceCreateAppendsWithoutDuplicates(t *testing.T) {
	s := Reduce(State{}, TasksFetched([]task.Task{mkTask("1", "a")}))
	s = Reduce(s, TaskCreated(mkTask("2", "b")))
	s = Reduce(s, TaskCreated(mkTask("1", "a2")))

	got := s.Tasks()
	if !equalIDs(ids(got), []string{"1", "2"}) {
		t.Fatalf("Tasks() = %v, want [1 2]", ids(got))
	}
	if got[0].Title != "a2" {
		t.Fatalf("re-created task not replaced in place: %+v", got[0])
	}
}

func TestReduceFetchTaskLeavesList(t *testing.T) {
	s := Reduce(State{}, TasksFetched([]task.Task{mkTask("1", "a")}))
	s = Reduce(s, TaskFetched(mkTask("9", "detail")))
	if s.Task == nil || s.Task.ID != "9" {
		t.Fatalf("Task = %+v, want 9", s.Task)
	}
	if !equalIDs(ids(s.Tasks()), []string{"1"}) {
		t.Fatalf("list changed: %v", ids(s.Tasks()))
	}
}

func TestReduceUpdate(t *testing.T) {
	s := Reduce(State{}, TasksFetched([]task.Task{mkTask("1", "a"), mkTask("2", "b")}))

	s = Reduce(s, TaskUpdated(mkTask("2", "B")))
	got := s.Tasks()
	if !equalIDs(ids(got), []string{"1", "2"}) || got[1].Title != "B" {
		t.Fatalf("after update = %+v", got)
	}

	before := s.Tasks()
	s = Reduce(s, TaskUpdated(mkTask("404", "ghost")))
	if !equalIDs(ids(s.Tasks()), ids(before)) {
		t.Fatalf("update of absent id changed list: %v", ids(s.Tasks()))
	}
}

func TestReduceDelete(t *testing.T) {
	s := Reduce(State{}, TasksFetched([]task.Task{mkTask("1", "a"), mkTask("2", "b"), mkTask("3", "c")}))
	s = Reduce(s, TaskDeleted("2"))
	if !equalIDs(ids(s.Tasks()), []string{"1", "3"}) {
		t.Fatalf("after delete = %v", ids(s.Tasks()))
	}
	s = Reduce(s, TaskDeleted("2"))
	if s.Len() != 2 {
		t.Fatalf("second delete changed list: %v", ids(s.Tasks()))
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s0 := Reduce(State{}, TasksFetched([]task.Task{mkTask("1", "a"), mkTask("2", "b")}))

	_ = Reduce(s0, TaskCreated(mkTask("3", "c")))
	_ = Reduce(s0, TaskUpdated(mkTask("1", "A")))
	_ = Reduce(s0, TaskDeleted("2"))

	got := s0.Tasks()
	if !equalIDs(ids(got), []string{"1", "2"}) || got[0].Title != "a" {
		t.Fatalf("input state mutated: %+v", got)
	}
}

func TestZeroStateIsEmpty(t *testing.T) {
	var s State
	if s.Tasks() == nil || len(s.Tasks()) != 0 || s.Task != nil || s.Loading || s.Error != "" {
		t.Fatalf("zero state = %+v", s)
	}
}
