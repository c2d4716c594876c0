package client

import "taskboard/pkg/task"

// Op names one of the asynchronous task operations.
type Op string

const (
	OpFetchTasks Op = "fetchTasks"
	OpCreateTask Op = "createTask"
	OpFetchTask  Op = "fetchTaskById"
	OpUpdateTask Op = "updateTask"
	OpDeleteTask Op = "deleteTask"
)

// Phase is the lifecycle stage of an operation.
type Phase int

const (
	Pending Phase = iota
	Fulfilled
	Rejected
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// UnknownError is reported when a request never produced a response.
const UnknownError = "An unknown error occurred"

// fallbackMessage is used when a rejection carries no server message.
func fallbackMessage(op Op) string {
	switch op {
	case OpFetchTasks:
		return "Failed to fetch tasks"
	case OpCreateTask:
		return "Failed to create task"
	case OpFetchTask:
		return "Failed to fetch task"
	case OpUpdateTask:
		return "Failed to update task"
	case OpDeleteTask:
		return "Failed to delete task"
	}
	return UnknownError
}

// Action is a single state transition request.
type Action struct {
	Op    Op
	Phase Phase

	Tasks []task.Task // FetchTasks fulfilled
	Task  *task.Task  // Create, FetchTask and Update fulfilled
	ID    string      // DeleteTask fulfilled
	Err   string      // Rejected
}

func PendingAction(op Op) Action { return Action{Op: op, Phase: Pending} }

func RejectedAction(op Op, msg string) Action {
	return Action{Op: op, Phase: Rejected, Err: msg}
}

func TasksFetched(tasks []task.Task) Action {
	return Action{Op: OpFetchTasks, Phase: Fulfilled, Tasks: tasks}
}

func TaskCreated(t task.Task) Action {
	return Action{Op: OpCreateTask, Phase: Fulfilled, Task: &t}
}

func TaskFetched(t task.Task) Action {
	return Action{Op: OpFetchTask, Phase: Fulfilled, Task: &t}
}

func TaskUpdated(t task.Task) Action {
	return Action{Op: OpUpdateTask, Phase: Fulfilled, Task: &t}
}

func TaskDeleted(id string) Action {
	return Action{Op: OpDeleteTask, Phase: Fulfilled, ID: id}
}

// State is the client's view of the task list. The zero value is the
// initial state: no tasks, no current task, idle, no error.
//
// The list is held keyed by id so an id can never appear twice; Tasks
// projects it back to server order.
type State struct {
	order []string
	byID  map[string]task.Task

	Task    *task.Task
	Loading bool
	Error   string
}

// Tasks returns the list in server order. The slice is a fresh copy.
func (s State) Tasks() []task.Task {
	out := make([]task.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len is the number of tasks in the list.
func (s State) Len() int { return len(s.order) }

// Reduce applies a to s and returns the next state. s is never modified.
func Reduce(s State, a Action) State {
	switch a.Phase {
	case Pending:
		s.Loading = true
		s.Error = ""
		return s
	case Rejected:
		s.Loading = false
		s.Error = a.Err
		if s.Error == "" {
			s.Error = fallbackMessage(a.Op)
		}
		return s
	}

	s.Loading = false
	switch a.Op {
	case OpFetchTasks:
		s.order, s.byID = index(a.Tasks)
	case OpCreateTask:
		if a.Task == nil {
			return s
		}
		order, byID := s.copyList()
		if _, ok := byID[a.Task.ID]; !ok {
			order = append(order, a.Task.ID)
		}
		byID[a.Task.ID] = *a.Task
		s.order, s.byID = order, byID
	case OpFetchTask:
		if a.Task != nil {
			t := *a.Task
			s.Task = &t
		}
	case OpUpdateTask:
		if a.Task == nil {
			return s
		}
		if _, ok := s.byID[a.Task.ID]; !ok {
			return s
		}
		order, byID := s.copyList()
		byID[a.Task.ID] = *a.Task
		s.order, s.byID = order, byID
	case OpDeleteTask:
		if _, ok := s.byID[a.ID]; !ok {
			return s
		}
		order, byID := s.copyList()
		delete(byID, a.ID)
		kept := order[:0]
		for _, id := range order {
			if id != a.ID {
				kept = append(kept, id)
			}
		}
		s.order, s.byID = kept, byID
	}
	return s
}

func (s State) copyList() ([]string, map[string]task.Task) {
	order := make([]string, len(s.order), len(s.order)+1)
	copy(order, s.order)
	byID := make(map[string]task.Task, len(s.byID)+1)
	for id, t := range s.byID {
		byID[id] = t
	}
	return order, byID
}

// index builds the keyed list. A repeated id keeps its first position
// and its last value.
func index(tasks []task.Task) ([]string, map[string]task.Task) {
	order := make([]string, 0, len(tasks))
	byID := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		if _, ok := byID[t.ID]; !ok {
			order = append(order, t.ID)
		}
		byID[t.ID] = t
	}
	return order, byID
}
