package list_technicians

import (
	"net/http"

	"github.com/m04kA/SMC-WashScheduler/internal/api/handlers"
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

// Handle GET /api/v1/technicians
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /technicians - Failed to list technicians: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /technicians - Technicians retrieved successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
