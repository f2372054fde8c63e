package create_appointment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	"github.com/m04kA/SMC-WashScheduler/pkg/types"
)

// validateRequest валидирует входные данные и возвращает момент начала записи
func validateRequest(req *Request, loc *time.Location) (time.Time, error) {
	if req == nil {
		return time.Time{}, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ScheduledAt) == "" {
		return time.Time{}, fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}

	at, err := types.ParseDateTime(req.ScheduledAt, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid scheduledAt: %v", ErrInvalidInput, err)
	}

	serviceName := strings.TrimSpace(req.ServiceName)
	if serviceName == "" {
		return time.Time{}, fmt.Errorf("%w: serviceName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(serviceName) > domain.MaxServiceNameLength {
		return time.Time{}, fmt.Errorf("%w: serviceName is longer than %d", ErrInvalidInput, domain.MaxServiceNameLength)
	}

	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return time.Time{}, fmt.Errorf("%w: customerName is longer than %d", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.TechnicianName != nil && utf8.RuneCountInString(*req.TechnicianName) > domain.MaxTechnicianNameLen {
		return time.Time{}, fmt.Errorf("%w: technicianName is longer than %d", ErrInvalidInput, domain.MaxTechnicianNameLen)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return time.Time{}, fmt.Errorf("%w: notes are longer than %d", ErrInvalidInput, domain.MaxNotesLength)
	}

	return at.In(loc), nil
}

// validateSlotStart проверяет, что момент совпадает с началом одного из слотов своего дня.
// Калькулятор сопоставляет записи со слотами по точному совпадению, запись "между слотами" никогда не стала бы видна
func validateSlotStart(at time.Time, definitions []domain.SlotDefinition) error {
	day := types.StartOfDay(at)
	for _, def := range definitions {
		if def.Start.On(day).Equal(at) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, at.Format(time.RFC3339))
}

// validateCutoff повторяет правило калькулятора: сегодняшний слот, начинающийся раньше now+lookAhead, закрыт.
// Прошедшие дни не блокируются
func validateCutoff(at, now time.Time, lookAhead time.Duration) error {
	if types.SameDay(at, now) && at.Before(now.Add(lookAhead)) {
		return fmt.Errorf("%w: slot starts at %s", ErrTooLateToBook, at.Format(time.RFC3339))
	}
	return nil
}

// countSlotBookings считает неотменённые записи ровно в момент at
func countSlotBookings(appointments []*domain.Appointment, at time.Time) int {
	count := 0
	for _, a := range appointments {
		if a == nil || a.IsCancelled() {
			continue
		}
		scheduled, ok := a.ScheduledTime(at.Location())
		if !ok {
			continue
		}
		if scheduled.UnixMilli() == at.UnixMilli() {
			count++
		}
	}
	return count
}

func findTechnician(roster []domain.Technician, name string) (domain.Technician, bool) {
	name = strings.TrimSpace(name)
	for _, t := range roster {
		if t.Name == name {
			return t, true
		}
	}
	return domain.Technician{}, false
}
