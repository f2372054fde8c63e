package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashScheduler/pkg/types"
)

// AppointmentStatus represents the lifecycle state of a car-wash appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusApproved   AppointmentStatus = "approved"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusDenied     AppointmentStatus = "denied"
)

// transitions lists the statuses reachable from each status
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusApproved, StatusInProgress, StatusCancelled, StatusDenied},
	StatusApproved:   {StatusInProgress, StatusCancelled, StatusDenied},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusDenied},
}

// ParseAppointmentStatus validates a raw status value
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	switch status {
	case StatusPending, StatusApproved, StatusInProgress, StatusCompleted, StatusCancelled, StatusDenied:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// IsCounted returns true for statuses that occupy a technician's active task counter
func (s AppointmentStatus) IsCounted() bool {
	return s == StatusPending || s == StatusInProgress
}

// IsTerminal returns true if no further transition is possible
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusDenied
}

// CanTransitionTo reports whether next is reachable from s. Staying in place is always allowed
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment is a booked car-wash service.
// ScheduledAt is kept as the raw stored value: records imported from the old document store
// may carry malformed timestamps, which must degrade to "no slot" rather than fail reads.
type Appointment struct {
	ID             string
	ScheduledAt    string
	Status         AppointmentStatus
	TechnicianName string
	ServiceName    string
	CustomerName   string
	Notes          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduledTime parses ScheduledAt, zone-less values are read in loc
func (a *Appointment) ScheduledTime(loc *time.Location) (time.Time, bool) {
	t, err := types.ParseDateTime(a.ScheduledAt, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsCancelled returns true if the appointment no longer occupies its slot
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsAssigned returns true if a real technician is attached
func (a *Appointment) IsAssigned() bool {
	return IsRealTechnician(a.TechnicianName)
}

// AppointmentsFilter optional filters for listing appointments
type AppointmentsFilter struct {
	Status         *AppointmentStatus
	TechnicianName *string
}
