package update_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	"github.com/m04kA/SMC-WashScheduler/internal/workload"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Appointment, error)
	UpdateAssignment(ctx context.Context, id string, status domain.AppointmentStatus, technicianName string) error
}

// TechnicianRepository интерфейс репозитория мастеров
type TechnicianRepository interface {
	ListAll(ctx context.Context) ([]domain.Technician, error)
	AdjustActiveTasks(ctx context.Context, name string, delta int) (bool, error)
}

// Balancer интерфейс балансировщика нагрузки мастеров
type Balancer interface {
	SelectLeastBusy(roster []domain.Technician) (workload.Selection, []domain.Technician)
	AdjustTaskCount(roster []domain.Technician, name string, delta int) ([]domain.Technician, bool)
	TransitionDeltas(before, after workload.Assignment) []workload.Delta
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ObserveSelection(outcome string)
	ObserveAdjustment(direction, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
