package models

import (
	"time"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
)

// ListAppointmentsRequest фильтры списка записей
type ListAppointmentsRequest struct {
	Status         *string `json:"status,omitempty"`
	TechnicianName *string `json:"technicianName,omitempty"`
}

// AppointmentResponse запись на мойку
type AppointmentResponse struct {
	ID             string    `json:"id"`
	ScheduledAt    string    `json:"scheduledAt"`
	Status         string    `json:"status"`
	TechnicianName string    `json:"technicianName"`
	ServiceName    string    `json:"serviceName"`
	CustomerName   string    `json:"customerName"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// ServiceUsage сколько раз услуга была заказана
type ServiceUsage struct {
	ServiceName string `json:"serviceName"`
	Count       int    `json:"count"`
}

// ServiceUsageResponse статистика по услугам
type ServiceUsageResponse struct {
	Services []ServiceUsage `json:"services"`
	Total    int            `json:"total"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:             a.ID,
		ScheduledAt:    a.ScheduledAt,
		Status:         string(a.Status),
		TechnicianName: a.TechnicianName,
		ServiceName:    a.ServiceName,
		CustomerName:   a.CustomerName,
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	out := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: out, Total: len(out)}
}
