package update_appointment

import (
	"time"

	updateAppointment "github.com/m04kA/SMC-WashScheduler/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model
type UpdateAppointmentRequest struct {
	Status         *string `json:"status,omitempty"`
	TechnicianName *string `json:"technicianName,omitempty"`
	AutoAssign     bool    `json:"autoAssign,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             string                  `json:"id"`
	ScheduledAt    string                  `json:"scheduledAt"`
	Status         string                  `json:"status"`
	TechnicianName string                  `json:"technicianName"`
	ServiceName    string                  `json:"serviceName"`
	CustomerName   string                  `json:"customerName"`
	Notes          *string                 `json:"notes,omitempty"`
	CounterChanges []CounterChangeResponse `json:"counterChanges"`
	CreatedAt      string                  `json:"createdAt"`
	UpdatedAt      string                  `json:"updatedAt"`
}

// CounterChangeResponse изменение счётчика мастера
type CounterChangeResponse struct {
	TechnicianName string `json:"technicianName"`
	Delta          int    `json:"delta"`
	Applied        bool   `json:"applied"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID string) *updateAppointment.Request {
	return &updateAppointment.Request{
		AppointmentID:  appointmentID,
		Status:         r.Status,
		TechnicianName: r.TechnicianName,
		AutoAssign:     r.AutoAssign,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	changes := make([]CounterChangeResponse, 0, len(resp.CounterChanges))
	for _, c := range resp.CounterChanges {
		changes = append(changes, CounterChangeResponse{
			TechnicianName: c.TechnicianName,
			Delta:          c.Delta,
			Applied:        c.Applied,
		})
	}

	return &AppointmentResponse{
		ID:             resp.ID,
		ScheduledAt:    resp.ScheduledAt,
		Status:         resp.Status,
		TechnicianName: resp.TechnicianName,
		ServiceName:    resp.ServiceName,
		CustomerName:   resp.CustomerName,
		Notes:          resp.Notes,
		CounterChanges: changes,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
