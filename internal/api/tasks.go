package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/service"
	"taskboard/pkg/task"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	msgInternal    = "Internal Server Error"
	msgInvalidID   = "Invalid task ID"
	msgNotFound    = "Task not found"
	msgInvalidBody = "Invalid request body"
	msgBadStatus   = "Status must be one of PENDING, IN_PROGRESS, COMPLETED"
)

type createTaskRequest struct {
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Status      task.Status `json:"status"`
}

type updateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Status      *task.Status `json:"status"`
}

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", defaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Page must be an integer")
		return
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Limit must be an integer")
		return
	}
	if page < 1 {
		writeError(w, http.StatusBadRequest, "Page must be greater than 0")
		return
	}
	if limit < 1 {
		writeError(w, http.StatusBadRequest, "Limit must be greater than 0")
		return
	}

	tasks, err := s.tasks.GetTasks(r.Context(), page, limit)
	if err != nil {
		s.fail(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	t, err := s.tasks.GetTaskByID(r.Context(), id)
	if err != nil {
		s.fail(w, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.Status != "" && !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, msgBadStatus)
		return
	}

	t, err := s.tasks.CreateTask(r.Context(), task.Fields{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		s.fail(w, "create", err)
		return
	}
	s.metrics.TasksMutated.WithLabelValues("create").Inc()
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title must not be empty")
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, msgBadStatus)
		return
	}

	t, err := s.tasks.UpdateTask(r.Context(), id, task.Patch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		s.fail(w, "update", err)
		return
	}
	s.metrics.TasksMutated.WithLabelValues("update").Inc()
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	t, err := s.tasks.DeleteTask(r.Context(), id)
	if err != nil {
		s.fail(w, "delete", err)
		return
	}
	s.metrics.TasksMutated.WithLabelValues("delete").Inc()
	writeJSON(w, http.StatusOK, t)
}

// fail maps a service error onto a response. Anything that is not a known
// domain outcome is logged and answered with a generic 500.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	default:
		s.log.Logf("[ERROR] %s task: %v", op, err)
		s.metrics.InternalErrors.WithLabelValues(op).Inc()
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func queryInt(r *http.Request, key string, defaultVal int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}
