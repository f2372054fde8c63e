package update_technician_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WashScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians"
	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус мастера, ожидается active или inactive"
	msgNotFound           = "мастер не найден"
)

type Handler struct {
	service TechnicianService
	logger  Logger
}

func NewHandler(service TechnicianService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/technicians/{technicianId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	technicianID := mux.Vars(r)["technicianId"]

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /technicians/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	technician, err := h.service.SetStatus(r.Context(), technicianID, &req)
	if err != nil {
		switch {
		case errors.Is(err, technicians.ErrInvalidInput):
			h.logger.Warn("PATCH /technicians/{id}/status - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, technicians.ErrTechnicianNotFound):
			h.logger.Warn("PATCH /technicians/{id}/status - Technician not found: technician_id=%s", technicianID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /technicians/{id}/status - Failed to update status: technician_id=%s, error=%v", technicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /technicians/{id}/status - Status updated successfully: technician_id=%s, status=%s",
		technicianID, technician.Status)
	handlers.RespondJSON(w, http.StatusOK, technician)
}
