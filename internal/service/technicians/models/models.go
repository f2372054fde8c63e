package models

import (
	"time"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	"github.com/m04kA/SMC-WashScheduler/internal/workload"
)

// CreateTechnicianRequest запрос на добавление мастера
type CreateTechnicianRequest struct {
	Name   string  `json:"name"`
	Status *string `json:"status,omitempty"` // по умолчанию active
}

// UpdateStatusRequest запрос на смену статуса мастера
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// TechnicianResponse мастер
type TechnicianResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	ActiveTaskCount int       `json:"activeTaskCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TechnicianListResponse список мастеров
type TechnicianListResponse struct {
	Technicians []TechnicianResponse `json:"technicians"`
	Total       int                  `json:"total"`
}

// Correction исправленный счётчик
type Correction struct {
	TechnicianID string `json:"technicianId"`
	Name         string `json:"name"`
	From         int    `json:"from"`
	To           int    `json:"to"`
}

// ReconcileResponse результат сверки счётчиков
type ReconcileResponse struct {
	Checked     int          `json:"checked"`
	Corrections []Correction `json:"corrections"`
}

// FromDomainTechnician конвертирует domain модель в response
func FromDomainTechnician(t *domain.Technician) TechnicianResponse {
	return TechnicianResponse{
		ID:              t.ID,
		Name:            t.Name,
		Status:          string(t.Status),
		ActiveTaskCount: t.ActiveTaskCount,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// FromDomainTechnicianList конвертирует список domain моделей в response
func FromDomainTechnicianList(list []domain.Technician) *TechnicianListResponse {
	out := make([]TechnicianResponse, 0, len(list))
	for i := range list {
		out = append(out, FromDomainTechnician(&list[i]))
	}
	return &TechnicianListResponse{Technicians: out, Total: len(out)}
}

// FromCorrections конвертирует найденные расхождения в response
func FromCorrections(checked int, corrections []workload.Correction) *ReconcileResponse {
	out := make([]Correction, 0, len(corrections))
	for _, c := range corrections {
		out = append(out, Correction{TechnicianID: c.TechnicianID, Name: c.Name, From: c.From, To: c.To})
	}
	return &ReconcileResponse{Checked: checked, Corrections: out}
}
