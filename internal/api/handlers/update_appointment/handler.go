package update_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WashScheduler/internal/api/handlers"
	updateAppointment "github.com/m04kA/SMC-WashScheduler/internal/usecase/update_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры изменения записи"
	msgNotFound           = "запись не найдена"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgAppointmentClosed  = "запись уже закрыта, мастера сменить нельзя"
	msgTechnicianNotFound = "мастер не найден"
	msgTechnicianInactive = "мастер не принимает записи"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Invalid input: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateAppointment.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id} - %v", err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, updateAppointment.ErrAppointmentClosed):
			h.logger.Warn("PATCH /appointments/{id} - %v", err)
			handlers.RespondConflict(w, msgAppointmentClosed)

		case errors.Is(err, updateAppointment.ErrTechnicianNotFound):
			h.logger.Warn("PATCH /appointments/{id} - %v", err)
			handlers.RespondNotFound(w, msgTechnicianNotFound)

		case errors.Is(err, updateAppointment.ErrTechnicianInactive):
			h.logger.Warn("PATCH /appointments/{id} - %v", err)
			handlers.RespondBadRequest(w, msgTechnicianInactive)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to update appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated successfully: appointment_id=%s, status=%s, technician=%s",
		result.ID, result.Status, result.TechnicianName)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
