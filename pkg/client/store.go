package client

import (
	"context"
	"errors"
	"sync"

	"taskboard/pkg/task"
)

// API is the remote side of a Store. *Client implements it.
type API interface {
	ListTasks(ctx context.Context, page, limit int) ([]task.Task, error)
	GetTask(ctx context.Context, id string) (*task.Task, error)
	CreateTask(ctx context.Context, f task.Fields) (*task.Task, error)
	UpdateTask(ctx context.Context, id string, p task.Patch) (*task.Task, error)
	DeleteTask(ctx context.Context, id string) (*task.Task, error)
}

// Store holds client state and runs operations against an API. Every
// transition goes through Reduce under one lock, so subscribers never
// observe a half-applied action. Concurrent operations share the Loading
// and Error flags and the last one to finish wins.
type Store struct {
	api API

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func NewStore(api API) *Store {
	return &Store{
		api:  api,
		subs: make(map[int]func(State)),
	}
}

// State returns the current snapshot. Snapshots are immutable.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with every new state. fn runs on the
// dispatching goroutine and must not block. The returned func removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Dispatch applies a and notifies subscribers. It returns the new state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// FetchTasks replaces the list with one page from the server.
func (s *Store) FetchTasks(ctx context.Context, page, limit int) error {
	s.Dispatch(PendingAction(OpFetchTasks))
	tasks, err := s.api.ListTasks(ctx, page, limit)
	if err != nil {
		s.reject(OpFetchTasks, err)
		return err
	}
	s.Dispatch(TasksFetched(tasks))
	return nil
}

func (s *Store) CreateTask(ctx context.Context, f task.Fields) (*task.Task, error) {
	s.Dispatch(PendingAction(OpCreateTask))
	t, err := s.api.CreateTask(ctx, f)
	if err != nil {
		s.reject(OpCreateTask, err)
		return nil, err
	}
	s.Dispatch(TaskCreated(*t))
	return t, nil
}

// FetchTaskByID loads a single task into State.Task.
func (s *Store) FetchTaskByID(ctx context.Context, id string) (*task.Task, error) {
	s.Dispatch(PendingAction(OpFetchTask))
	t, err := s.api.GetTask(ctx, id)
	if err != nil {
		s.reject(OpFetchTask, err)
		return nil, err
	}
	s.Dispatch(TaskFetched(*t))
	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, p task.Patch) (*task.Task, error) {
	s.Dispatch(PendingAction(OpUpdateTask))
	t, err := s.api.UpdateTask(ctx, id, p)
	if err != nil {
		s.reject(OpUpdateTask, err)
		return nil, err
	}
	s.Dispatch(TaskUpdated(*t))
	return t, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.Dispatch(PendingAction(OpDeleteTask))
	if _, err := s.api.DeleteTask(ctx, id); err != nil {
		s.reject(OpDeleteTask, err)
		return err
	}
	s.Dispatch(TaskDeleted(id))
	return nil
}

func (s *Store) reject(op Op, err error) {
	s.Dispatch(RejectedAction(op, rejectionMessage(err)))
}

// rejectionMessage reduces err to what the UI shows. A server response
// yields its message, or "" so the reducer picks the operation fallback.
func rejectionMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return UnknownError
}
