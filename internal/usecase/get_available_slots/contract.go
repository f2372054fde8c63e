package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListAll полный снимок записей, фильтрация по дню выполняется калькулятором
	ListAll(ctx context.Context) ([]*domain.Appointment, error)
}

// SlotCalculator интерфейс калькулятора доступности слотов
type SlotCalculator interface {
	Compute(targetDate time.Time, definitions []domain.SlotDefinition, appointments []*domain.Appointment, now time.Time) []domain.SlotView
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ObserveSlotGrid()
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
