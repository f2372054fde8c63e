package create_technician

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WashScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians"
	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные мастера"
	msgDuplicateName      = "мастер с таким именем уже существует"
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

// Handle POST /api/v1/technicians
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTechnicianRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /technicians - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	technician, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, technicians.ErrInvalidInput):
			h.logger.Warn("POST /technicians - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, technicians.ErrDuplicateName):
			h.logger.Warn("POST /technicians - Duplicate name: %s", req.Name)
			handlers.RespondConflict(w, msgDuplicateName)

		default:
			h.logger.Error("POST /technicians - Failed to create technician: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /technicians - Technician created successfully: technician_id=%s, name=%s", technician.ID, technician.Name)
	handlers.RespondJSON(w, http.StatusCreated, technician)
}
