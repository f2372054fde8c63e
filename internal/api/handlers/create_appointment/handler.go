package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WashScheduler/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-WashScheduler/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные записи"
	msgInvalidTimeSlot    = "время записи не совпадает с началом слота"
	msgTooLateToBook      = "слишком поздно для записи на этот слот"
	msgSlotNotAvailable   = "выбранный слот уже занят"
	msgSlotBusy           = "слот прямо сейчас бронируется, повторите запрос"
	msgTechnicianNotFound = "мастер не найден"
	msgTechnicianInactive = "мастер не принимает записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: scheduled_at=%s", req.ScheduledAt)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: scheduled_at=%s", req.ScheduledAt)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: scheduled_at=%s", req.ScheduledAt)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrSlotBusy):
			h.logger.Warn("POST /appointments - Slot is locked: scheduled_at=%s", req.ScheduledAt)
			handlers.RespondConflict(w, msgSlotBusy)

		case errors.Is(err, createAppointment.ErrTechnicianNotFound):
			h.logger.Warn("POST /appointments - Technician not found: %v", err)
			handlers.RespondNotFound(w, msgTechnicianNotFound)

		case errors.Is(err, createAppointment.ErrTechnicianInactive):
			h.logger.Warn("POST /appointments - Technician inactive: %v", err)
			handlers.RespondBadRequest(w, msgTechnicianInactive)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: scheduled_at=%s, error=%v", req.ScheduledAt, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, technician=%s",
		result.ID, result.TechnicianName)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
