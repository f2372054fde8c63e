package update_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	updateAppointment "github.com/m04kA/SMC-WashScheduler/internal/usecase/update_appointment"
)

type fakeUseCase struct {
	resp *updateAppointment.Response
	err  error
	got  *updateAppointment.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateAppointment.Request) (*updateAppointment.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}", h.Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/a1", strings.NewReader(body)))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &updateAppointment.Response{
		ID:             "a1",
		Status:         "completed",
		TechnicianName: "A",
		CounterChanges: []updateAppointment.CounterChange{{TechnicianName: "A", Delta: -1, Applied: true}},
	}}

	rec := serve(NewHandler(uc, nopLogger{}), `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "a1", uc.got.AppointmentID)
	require.NotNil(t, uc.got.Status)
	assert.Equal(t, "completed", *uc.got.Status)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []CounterChangeResponse{{TechnicianName: "A", Delta: -1, Applied: true}}, resp.CounterChanges)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{updateAppointment.ErrInvalidInput, http.StatusBadRequest},
		{updateAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{updateAppointment.ErrInvalidTransition, http.StatusConflict},
		{updateAppointment.ErrAppointmentClosed, http.StatusConflict},
		{updateAppointment.ErrTechnicianNotFound, http.StatusNotFound},
		{updateAppointment.ErrTechnicianInactive, http.StatusBadRequest},
		{updateAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tc.err}, nopLogger{}), `{"autoAssign":true}`)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
