package availability

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Info(string, ...interface{}) {}
func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}
func (l *recordingLogger) Error(string, ...interface{}) {}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func appt(id, scheduledAt string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{ID: id, ScheduledAt: scheduledAt, Status: status, TechnicianName: domain.UnassignedTechnician}
}

func findSlot(t *testing.T, slots []domain.SlotView, start string) domain.SlotView {
	t.Helper()
	for _, s := range slots {
		if s.StartTime == start {
			return s
		}
	}
	t.Fatalf("slot %s not found", start)
	return domain.SlotView{}
}

func TestComputeSlots_KeepsCountAndOrder(t *testing.T) {
	defs := domain.DefaultSlotDefinitions()
	// deliberately non-chronological
	defs[0], defs[5] = defs[5], defs[0]

	slots := ComputeSlots(day(2025, 10, 30), defs, nil, time.Date(2025, 10, 28, 13, 0, 0, 0, time.UTC))

	require.Len(t, slots, len(defs))
	for i, def := range defs {
		assert.Equal(t, def.Label(), slots[i].Label)
		assert.Equal(t, def.Start.String(), slots[i].StartTime)
		assert.True(t, slots[i].Available)
	}
}

func TestComputeSlots_SameDayCutoff(t *testing.T) {
	now := time.Date(2025, 10, 28, 13, 0, 0, 0, time.UTC)

	slots := ComputeSlots(day(2025, 10, 28), domain.DefaultSlotDefinitions(), nil, now)

	noon := findSlot(t, slots, "12:20 PM")
	assert.True(t, noon.PastCutoff)
	assert.False(t, noon.Available)

	// 13:20 < 14:00
	early := findSlot(t, slots, "1:20 PM")
	assert.True(t, early.PastCutoff)
	assert.False(t, early.Available)

	// 14:20 is not before 14:00
	later := findSlot(t, slots, "2:20 PM")
	assert.False(t, later.PastCutoff)
	assert.True(t, later.Available)
}

func TestComputeSlots_CutoffBoundaryIsExclusive(t *testing.T) {
	// now+1h lands exactly on 2:20 PM
	now := time.Date(2025, 10, 28, 13, 20, 0, 0, time.UTC)

	slots := ComputeSlots(day(2025, 10, 28), domain.DefaultSlotDefinitions(), nil, now)

	assert.False(t, findSlot(t, slots, "2:20 PM").PastCutoff)
	assert.True(t, findSlot(t, slots, "1:20 PM").PastCutoff)
}

func TestComputeSlots_CutoffOnlyAppliesToday(t *testing.T) {
	now := time.Date(2025, 10, 28, 23, 0, 0, 0, time.UTC)

	for _, target := range []time.Time{day(2025, 10, 27), day(2025, 10, 29)} {
		slots := ComputeSlots(target, domain.DefaultSlotDefinitions(), nil, now)
		for _, s := range slots {
			assert.False(t, s.PastCutoff, "%s %s", target.Format("2006-01-02"), s.Label)
			assert.True(t, s.Available)
		}
	}
}

func TestComputeSlots_CountsBookings(t *testing.T) {
	now := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)
	appointments := []*domain.Appointment{
		appt("1", "2025-10-28T10:20", domain.StatusPending),
		appt("2", "2025-10-28T10:20:00Z", domain.StatusInProgress),
		appt("3", "2025-10-28T10:20", domain.StatusCancelled),
		appt("4", "2025-10-29T10:20", domain.StatusPending),
		appt("5", "2025-10-28T11:20", domain.StatusDenied),
	}

	slots := ComputeSlots(day(2025, 10, 28), domain.DefaultSlotDefinitions(), appointments, now)

	tenTwenty := findSlot(t, slots, "10:20 AM")
	assert.Equal(t, 2, tenTwenty.BookingCount)
	assert.False(t, tenTwenty.Available)

	// only cancelled appointments are excluded
	elevenTwenty := findSlot(t, slots, "11:20 AM")
	assert.Equal(t, 1, elevenTwenty.BookingCount)

	assert.Equal(t, 0, findSlot(t, slots, "8:20 AM").BookingCount)
}

func TestComputeSlots_SingleBookingClosesSlot(t *testing.T) {
	now := time.Date(2025, 10, 28, 7, 0, 0, 0, time.UTC)
	appointments := []*domain.Appointment{appt("1", "2025-10-28T10:20", domain.StatusApproved)}

	slots := ComputeSlots(day(2025, 10, 28), domain.DefaultSlotDefinitions(), appointments, now)

	s := findSlot(t, slots, "10:20 AM")
	assert.Equal(t, 1, s.BookingCount)
	assert.False(t, s.PastCutoff)
	assert.False(t, s.Available)
}

func TestComputeSlots_ExactInstantMatchOnly(t *testing.T) {
	now := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	appointments := []*domain.Appointment{
		appt("1", "2025-10-28T10:20:30", domain.StatusPending),
		appt("2", "2025-10-28T10:20:00.001Z", domain.StatusPending),
	}

	slots := ComputeSlots(day(2025, 10, 28), domain.DefaultSlotDefinitions(), appointments, now)

	assert.Equal(t, 0, findSlot(t, slots, "10:20 AM").BookingCount)
}

func TestComputeSlots_MatchesAcrossOffsets(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	target := time.Date(2025, 10, 28, 0, 0, 0, 0, loc)
	now := time.Date(2025, 10, 1, 0, 0, 0, 0, loc)
	appointments := []*domain.Appointment{
		// 10:20 in UTC+8
		appt("1", "2025-10-28T02:20:00Z", domain.StatusPending),
		// zone-less values are read in the target day's location
		appt("2", "2025-10-28 10:20", domain.StatusPending),
	}

	slots := ComputeSlots(target, domain.DefaultSlotDefinitions(), appointments, now)

	assert.Equal(t, 2, findSlot(t, slots, "10:20 AM").BookingCount)
}

func TestCalculator_MalformedDatesDegrade(t *testing.T) {
	log := &recordingLogger{}
	calc := NewCalculator(time.Hour, log)
	appointments := []*domain.Appointment{
		appt("1", "", domain.StatusPending),
		appt("2", "next tuesday", domain.StatusPending),
		appt("3", "2025-10-28T10:20", domain.StatusPending),
		nil,
	}

	slots := calc.Compute(day(2025, 10, 28), domain.DefaultSlotDefinitions(), appointments, day(2025, 10, 1))

	require.Len(t, slots, 12)
	assert.Equal(t, 1, findSlot(t, slots, "10:20 AM").BookingCount)
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "skipped 2 appointments")
}

func TestCalculator_CustomLookAhead(t *testing.T) {
	now := time.Date(2025, 10, 28, 13, 0, 0, 0, time.UTC)
	calc := NewCalculator(2*time.Hour, nil)

	slots := calc.Compute(day(2025, 10, 28), domain.DefaultSlotDefinitions(), nil, now)

	assert.True(t, findSlot(t, slots, "2:20 PM").PastCutoff)
	assert.False(t, findSlot(t, slots, "3:20 PM").PastCutoff)
}

func TestComputeSlots_OccupancyProperty(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	defs := domain.DefaultSlotDefinitions()
	statuses := []domain.AppointmentStatus{
		domain.StatusPending, domain.StatusApproved, domain.StatusInProgress,
		domain.StatusCompleted, domain.StatusCancelled, domain.StatusDenied,
	}
	target := day(2025, 10, 28)

	for iter := 0; iter < 200; iter++ {
		now := target.Add(time.Duration(rnd.Intn(48)-12) * time.Hour).Add(time.Duration(rnd.Intn(60)) * time.Minute)

		var appointments []*domain.Appointment
		for i := 0; i < rnd.Intn(20); i++ {
			def := defs[rnd.Intn(len(defs))]
			at := def.Start.On(target).AddDate(0, 0, rnd.Intn(3)-1)
			appointments = append(appointments, appt(fmt.Sprint(i), at.Format(time.RFC3339), statuses[rnd.Intn(len(statuses))]))
		}

		slots := ComputeSlots(target, defs, appointments, now)
		require.Len(t, slots, len(defs))

		for i, s := range slots {
			expectedCount := 0
			for _, a := range appointments {
				if a.Status != domain.StatusCancelled && a.ScheduledAt == defs[i].Start.On(target).Format(time.RFC3339) {
					expectedCount++
				}
			}
			cutoff := now.Year() == target.Year() && now.YearDay() == target.YearDay() && s.StartsAt.Before(now.Add(time.Hour))

			assert.Equal(t, expectedCount, s.BookingCount)
			assert.Equal(t, cutoff, s.PastCutoff)
			assert.Equal(t, s.BookingCount == 0 && !s.PastCutoff, s.Available)
		}
	}
}
