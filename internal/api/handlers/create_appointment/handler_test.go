package create_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createAppointment "github.com/m04kA/SMC-WashScheduler/internal/usecase/create_appointment"
)

type fakeUseCase struct {
	resp *createAppointment.Response
	err  error
	got  *createAppointment.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_Created(t *testing.T) {
	at := time.Date(2025, 10, 29, 10, 20, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createAppointment.Response{
		ID:             "a1",
		ScheduledAt:    at,
		Status:         "pending",
		TechnicianName: "B",
		ServiceName:    "Wax",
	}}
	h := NewHandler(uc, nopLogger{})

	body := `{"scheduledAt":"2025-10-29T10:20:00Z","serviceName":"Wax","customerName":"Juan"}`
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Juan", uc.got.CustomerName)
	assert.Nil(t, uc.got.TechnicianName)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "a1", resp.ID)
	assert.Equal(t, "B", resp.TechnicianName)
	assert.Equal(t, "2025-10-29T10:20:00Z", resp.ScheduledAt)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: serviceName is required", createAppointment.ErrInvalidInput), http.StatusBadRequest},
		{createAppointment.ErrInvalidTimeSlot, http.StatusBadRequest},
		{createAppointment.ErrTooLateToBook, http.StatusBadRequest},
		{createAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{createAppointment.ErrSlotBusy, http.StatusConflict},
		{fmt.Errorf("%w: Z", createAppointment.ErrTechnicianNotFound), http.StatusNotFound},
		{createAppointment.ErrTechnicianInactive, http.StatusBadRequest},
		{createAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tc.err}, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{}`)))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{"scheduledAt":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}
