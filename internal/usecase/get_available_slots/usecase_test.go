package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashScheduler/internal/availability"
	"github.com/m04kA/SMC-WashScheduler/internal/domain"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
	calls        int
}

func (f *fakeAppointmentRepo) ListAll(context.Context) ([]*domain.Appointment, error) {
	f.calls++
	return f.appointments, f.err
}

type fakeMetrics struct {
	grids int
}

func (m *fakeMetrics) ObserveSlotGrid() { m.grids++ }

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeAppointmentRepo, m *fakeMetrics, now time.Time) *UseCase {
	uc := NewUseCase(
		repo,
		availability.NewCalculator(time.Hour, nil),
		domain.DefaultSlotDefinitions(),
		time.UTC,
		m,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_TodayWithBookings(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: "a1", ScheduledAt: "2025-10-28T15:20:00Z", Status: domain.StatusPending},
		{ID: "a2", ScheduledAt: "2025-10-28T16:20:00Z", Status: domain.StatusCancelled},
		{ID: "a3", ScheduledAt: "garbage", Status: domain.StatusPending},
	}}
	m := &fakeMetrics{}
	uc := newTestUseCase(repo, m, time.Date(2025, 10, 28, 13, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-10-28"})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 12)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Equal(t, 1, m.grids)

	byStart := make(map[string]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		byStart[s.StartTime] = s
	}

	assert.True(t, byStart["1:20 PM"].PastCutoff)
	assert.False(t, byStart["1:20 PM"].Available)

	assert.False(t, byStart["2:20 PM"].PastCutoff)
	assert.True(t, byStart["2:20 PM"].Available)

	assert.Equal(t, 1, byStart["3:20 PM"].BookingCount)
	assert.False(t, byStart["3:20 PM"].Available)

	assert.Equal(t, 0, byStart["4:20 PM"].BookingCount)
	assert.True(t, byStart["4:20 PM"].Available)
}

func TestExecute_ValidationError(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeMetrics{}, time.Now())

	for _, date := range []string{"", "28-10-2025", "2025-13-01"} {
		_, err := uc.Execute(context.Background(), &Request{Date: date})
		assert.ErrorIs(t, err, ErrInvalidDate, date)
	}

	_, err := uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Zero(t, repo.calls)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeAppointmentRepo{err: errors.New("connection refused")}
	m := &fakeMetrics{}
	uc := newTestUseCase(repo, m, time.Now())

	_, err := uc.Execute(context.Background(), &Request{Date: "2025-10-28"})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, m.grids)
}

func TestExecute_UsesBusinessTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	repo := &fakeAppointmentRepo{}
	uc := NewUseCase(repo, availability.NewCalculator(time.Hour, nil), domain.DefaultSlotDefinitions(), loc, &fakeMetrics{}, nopLogger{})

	// 23:30 UTC 27 октября это уже 7:30 утра 28 октября по местному времени
	uc.timeProvider = fixedTime{now: time.Date(2025, 10, 27, 23, 30, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-10-28"})
	require.NoError(t, err)

	// 8:20 начинается раньше 8:30 (now + 1h), значит отсечён
	assert.True(t, resp.Slots[0].PastCutoff)
	assert.False(t, resp.Slots[1].PastCutoff)
	assert.Equal(t, loc, resp.Slots[0].StartsAt.Location())
}
