package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WashScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-WashScheduler/internal/service/appointments"
	"github.com/m04kA/SMC-WashScheduler/internal/service/appointments/models"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: status, technician (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListAppointmentsRequest{}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}
	if technician := r.URL.Query().Get("technician"); technician != "" {
		req.TechnicianName = &technician
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
