package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	"github.com/m04kA/SMC-WashScheduler/pkg/types"
)

// UseCase use case для получения сетки слотов на день
type UseCase struct {
	appointmentRepo AppointmentRepository
	calculator      SlotCalculator
	definitions     []domain.SlotDefinition
	location        *time.Location
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calculator SlotCalculator,
	definitions []domain.SlotDefinition,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calculator:      calculator,
		definitions:     definitions,
		location:        location,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute строит сетку слотов на указанный день.
// Ошибкой может закончиться только чтение записей, сам расчёт не падает
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация и разбор даты в часовом поясе автомойки
	day, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: date=%s", day.Format(types.DateLayout))

	// 2. Текущее время в том же поясе, иначе "сегодня" считается по серверу
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Полный снимок записей
	appointments, err := uc.appointmentRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 4. Расчёт сетки
	views := uc.calculator.Compute(day, uc.definitions, appointments, now)
	uc.metrics.ObserveSlotGrid()

	slots := make([]Slot, len(views))
	available := 0
	for i, v := range views {
		slots[i] = Slot{
			Label:        v.Label,
			StartTime:    v.StartTime,
			StartsAt:     v.StartsAt,
			Available:    v.Available,
			PastCutoff:   v.PastCutoff,
			BookingCount: v.BookingCount,
		}
		if v.Available {
			available++
		}
	}

	uc.logger.Info("GetAvailableSlots: date=%s, %d/%d slots available",
		day.Format(types.DateLayout), available, len(slots))

	return &Response{
		Date:     day,
		Timezone: uc.location.String(),
		Slots:    slots,
	}, nil
}
