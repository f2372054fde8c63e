// Package availability builds the bookable slot grid of a single business day.
package availability

import (
	"time"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	"github.com/m04kA/SMC-WashScheduler/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Calculator считает доступность слотов. Не хранит состояния и не возвращает ошибок:
// сетка должна строиться всегда, даже по грязным данным
type Calculator struct {
	lookAhead time.Duration
	logger    Logger
}

// NewCalculator lookAhead <= 0 заменяется на domain.DefaultCutoffLookAhead
func NewCalculator(lookAhead time.Duration, logger Logger) *Calculator {
	if lookAhead <= 0 {
		lookAhead = domain.DefaultCutoffLookAhead
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Calculator{lookAhead: lookAhead, logger: logger}
}

// ComputeSlots считает сетку с часовым окном отсечения и без логирования
func ComputeSlots(
	targetDate time.Time,
	definitions []domain.SlotDefinition,
	appointments []*domain.Appointment,
	now time.Time,
) []domain.SlotView {
	return NewCalculator(domain.DefaultCutoffLookAhead, nil).Compute(targetDate, definitions, appointments, now)
}

// Compute возвращает ровно len(definitions) слотов в порядке определений.
//
// Бронирования сопоставляются со стартом слота по точному совпадению момента (миллисекунды),
// отменённые и непарсящиеся записи не учитываются. Окно отсечения применяется только к сегодняшнему дню;
// прошедшие дни не блокируются.
func (c *Calculator) Compute(
	targetDate time.Time,
	definitions []domain.SlotDefinition,
	appointments []*domain.Appointment,
	now time.Time,
) []domain.SlotView {
	loc := targetDate.Location()

	bookings, malformed := countBookings(appointments, loc)
	if malformed > 0 {
		c.logger.Warn("availability: skipped %d appointments with unparseable scheduledAt", malformed)
	}

	isToday := types.SameDay(targetDate, now)
	cutoff := now.Add(c.lookAhead)

	result := make([]domain.SlotView, len(definitions))
	for i, def := range definitions {
		slotInstant := def.Start.On(targetDate)
		bookingCount := bookings[slotInstant.UnixMilli()]
		pastCutoff := isToday && slotInstant.Before(cutoff)

		result[i] = domain.SlotView{
			Label:        def.Label(),
			StartTime:    def.Start.String(),
			StartsAt:     slotInstant,
			Available:    bookingCount == 0 && !pastCutoff,
			PastCutoff:   pastCutoff,
			BookingCount: bookingCount,
		}
	}

	return result
}

// countBookings группирует неотменённые бронирования по моменту начала (unix ms).
// Фильтрация по дню не нужна: ключи других дней просто не совпадут ни с одним слотом
func countBookings(appointments []*domain.Appointment, loc *time.Location) (map[int64]int, int) {
	counts := make(map[int64]int, len(appointments))
	malformed := 0

	for _, a := range appointments {
		if a == nil || a.IsCancelled() {
			continue
		}
		at, ok := a.ScheduledTime(loc)
		if !ok {
			malformed++
			continue
		}
		counts[at.UnixMilli()]++
	}

	return counts, malformed
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
