package reconcile_technicians

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

// Handle POST /api/v1/technicians/reconcile
// Пересчитывает счётчики активных задач по текущим записям
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Reconcile(r.Context())
	if err != nil {
		h.logger.Error("POST /technicians/reconcile - Failed to reconcile: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /technicians/reconcile - Reconciled: checked=%d, corrections=%d", result.Checked, len(result.Corrections))
	handlers.RespondJSON(w, http.StatusOK, result)
}
