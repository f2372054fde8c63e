package update_appointment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
)

// validateRequest валидирует запрос и возвращает разобранный статус, если он передан
func validateRequest(req *Request) (*domain.AppointmentStatus, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	if strings.TrimSpace(req.AppointmentID) == "" {
		return nil, fmt.Errorf("%w: appointmentID is required", ErrInvalidInput)
	}

	if req.Status == nil && req.TechnicianName == nil && !req.AutoAssign {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.AutoAssign && req.TechnicianName != nil {
		return nil, fmt.Errorf("%w: technicianName and autoAssign are mutually exclusive", ErrInvalidInput)
	}

	if req.TechnicianName != nil {
		name := strings.TrimSpace(*req.TechnicianName)
		if name == "" {
			return nil, fmt.Errorf("%w: technicianName must not be empty", ErrInvalidInput)
		}
		if utf8.RuneCountInString(name) > domain.MaxTechnicianNameLen {
			return nil, fmt.Errorf("%w: technicianName is longer than %d", ErrInvalidInput, domain.MaxTechnicianNameLen)
		}
	}

	if req.Status == nil {
		return nil, nil
	}

	status, err := domain.ParseAppointmentStatus(strings.TrimSpace(*req.Status))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &status, nil
}

func findTechnician(roster []domain.Technician, name string) (domain.Technician, bool) {
	for _, t := range roster {
		if t.Name == name {
			return t, true
		}
	}
	return domain.Technician{}, false
}
