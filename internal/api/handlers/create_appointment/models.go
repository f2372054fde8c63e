package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-WashScheduler/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ScheduledAt    string  `json:"scheduledAt"` // "2025-10-28T10:20:00+08:00" или "2025-10-28T10:20"
	ServiceName    string  `json:"serviceName"`
	CustomerName   string  `json:"customerName"`
	TechnicianName *string `json:"technicianName,omitempty"` // пусто - наименее загруженный мастер
	Notes          *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             string  `json:"id"`
	ScheduledAt    string  `json:"scheduledAt"`
	Status         string  `json:"status"`
	TechnicianName string  `json:"technicianName"`
	ServiceName    string  `json:"serviceName"`
	CustomerName   string  `json:"customerName"`
	Notes          *string `json:"notes,omitempty"`
	Overbooked     bool    `json:"overbooked"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		ScheduledAt:    r.ScheduledAt,
		ServiceName:    r.ServiceName,
		CustomerName:   r.CustomerName,
		TechnicianName: r.TechnicianName,
		Notes:          r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             resp.ID,
		ScheduledAt:    resp.ScheduledAt.Format(time.RFC3339),
		Status:         resp.Status,
		TechnicianName: resp.TechnicianName,
		ServiceName:    resp.ServiceName,
		CustomerName:   resp.CustomerName,
		Notes:          resp.Notes,
		Overbooked:     resp.Overbooked,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
