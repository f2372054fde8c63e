package update_technician_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians"
	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians/models"
)

type fakeService struct {
	resp  *models.TechnicianResponse
	err   error
	gotID string
	got   *models.UpdateStatusRequest
}

func (f *fakeService) SetStatus(_ context.Context, id string, req *models.UpdateStatusRequest) (*models.TechnicianResponse, error) {
	f.gotID = id
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/technicians/{technicianId}/status", h.Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/technicians/t1/status", strings.NewReader(body)))
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{resp: &models.TechnicianResponse{ID: "t1", Name: "A", Status: "inactive"}}

	rec := serve(NewHandler(svc, nopLogger{}), `{"status":"inactive"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "t1", svc.gotID)
	assert.Equal(t, "inactive", svc.got.Status)
	assert.Contains(t, rec.Body.String(), `"status":"inactive"`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"broken body", `{"status":`, nil, http.StatusBadRequest},
		{"invalid status", `{"status":"sleeping"}`, fmt.Errorf("%w: unknown status", technicians.ErrInvalidInput), http.StatusBadRequest},
		{"not found", `{"status":"active"}`, technicians.ErrTechnicianNotFound, http.StatusNotFound},
		{"internal", `{"status":"active"}`, technicians.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tc.err}, nopLogger{}), tc.body)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
