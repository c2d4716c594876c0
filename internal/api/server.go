package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-pkgz/lgr"

	"taskboard/internal/config"
	"taskboard/internal/observability"
	"taskboard/internal/service"
	"taskboard/internal/version"
)

// Server is the HTTP API server.
type Server struct {
	cfg     config.Config
	tasks   *service.Service
	metrics *observability.Metrics
	log     lgr.L
	router  chi.Router
}

// New creates a new Server.
func New(cfg config.Config, tasks *service.Service, metrics *observability.Metrics, log lgr.L) *Server {
	s := &Server{
		cfg:     cfg,
		tasks:   tasks,
		metrics: metrics,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{s.cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(middleware.GetHead)

	// Tasks
	r.Get("/tasks", s.handleTaskList)
	r.Post("/tasks", s.handleTaskCreate)
	r.Get("/tasks/{id}", s.handleTaskGet)
	r.Put("/tasks/{id}", s.handleTaskUpdate)
	r.Patch("/tasks/{id}", s.handleTaskUpdate)
	r.Delete("/tasks/{id}", s.handleTaskDelete)

	// "/tasks/" carries an empty id; the handlers answer 400.
	r.Get("/tasks/", s.handleTaskGet)
	r.Put("/tasks/", s.handleTaskUpdate)
	r.Patch("/tasks/", s.handleTaskUpdate)
	r.Delete("/tasks/", s.handleTaskDelete)

	// System
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())
}

// instrument records metrics and a debug log line for every request.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		s.metrics.ObserveRequest(r.Method, route, status, elapsed)
		s.log.Logf("[DEBUG] %s %s -> %d in %s", r.Method, r.URL.Path, status, elapsed)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.String(),
		"store":   s.cfg.StoreDriver,
	})
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		StatusCode: status,
		Message:    msg,
		Error:      http.StatusText(status),
	})
}
