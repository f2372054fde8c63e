package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	route  string
	status int
}

type recordingMetrics struct {
	mu   sync.Mutex
	seen []observation
}

func (m *recordingMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, observation{method: method, route: route, status: status})
}

func newTestRouter(m HTTPMetrics) *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/appointments/{appointmentId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/slots", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &recordingMetrics{}
	router := newTestRouter(m)

	req := httptest.NewRequest(http.MethodGet, "/appointments/a-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Len(t, m.seen, 1)
	assert.Equal(t, observation{method: http.MethodGet, route: "/appointments/{appointmentId}", status: http.StatusNotFound}, m.seen[0])
}

func TestMetricsMiddleware_DefaultStatusOK(t *testing.T) {
	m := &recordingMetrics{}
	router := newTestRouter(m)

	req := httptest.NewRequest(http.MethodGet, "/slots", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Len(t, m.seen, 1)
	assert.Equal(t, http.StatusOK, m.seen[0].status)
	assert.Equal(t, "/slots", m.seen[0].route)
}
