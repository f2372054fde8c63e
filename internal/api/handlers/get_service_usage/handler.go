package get_service_usage

import (
	"net/http"

	"github.com/m04kA/SMC-WashScheduler/internal/api/handlers"
)

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

// Handle GET /api/v1/appointments/service-usage
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ServiceUsage(r.Context())
	if err != nil {
		h.logger.Error("GET /appointments/service-usage - Failed to aggregate: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/service-usage - Usage retrieved successfully: services=%d", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
