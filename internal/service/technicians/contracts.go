package technicians

import (
	"context"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	"github.com/m04kA/SMC-WashScheduler/internal/workload"
)

// TechnicianRepository интерфейс репозитория мастеров
type TechnicianRepository interface {
	Create(ctx context.Context, t *domain.Technician) (*domain.Technician, error)
	GetByID(ctx context.Context, id string) (*domain.Technician, error)
	ListAll(ctx context.Context) ([]domain.Technician, error)
	UpdateStatus(ctx context.Context, id string, status domain.TechnicianStatus) error
	SetActiveTasks(ctx context.Context, id string, count int) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListAll(ctx context.Context) ([]*domain.Appointment, error)
}

// Reconciler пересчёт счётчиков по авторитетному набору записей
type Reconciler interface {
	Reconcile(roster []domain.Technician, appointments []*domain.Appointment) ([]domain.Technician, []workload.Correction)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
