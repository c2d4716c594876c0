package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	m := NewMetrics("test")
	m.ObserveRequest(http.MethodGet, "/tasks", http.StatusOK, 3*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/tasks", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/tasks", http.StatusBadRequest, time.Millisecond)

	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/tasks", "200")); got != 2 {
		t.Fatalf("200 count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/tasks", "400")); got != 1 {
		t.Fatalf("400 count = %v, want 1", got)
	}
}

func TestHandlerExposesNamespace(t *testing.T) {
	m := NewMetrics("exposed")
	m.InternalErrors.WithLabelValues("list").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `exposed_internal_errors_total{op="list"} 1`) {
		t.Fatalf("metrics output missing counter:\n%s", body)
	}
}
