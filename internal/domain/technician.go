package domain

import (
	"fmt"
	"strings"
	"time"
)

// UnassignedTechnician is the reserved technician name meaning "nobody yet"
const UnassignedTechnician = "Unassigned"

// TechnicianStatus represents whether a technician takes new work
type TechnicianStatus string

const (
	TechnicianActive   TechnicianStatus = "active"
	TechnicianInactive TechnicianStatus = "inactive"
)

// ParseTechnicianStatus validates a raw technician status
func ParseTechnicianStatus(s string) (TechnicianStatus, error) {
	status := TechnicianStatus(s)
	if status == TechnicianActive || status == TechnicianInactive {
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Technician is a car-wash worker.
// ActiveTaskCount is denormalized: it should equal the number of pending and in-progress
// appointments assigned to Name.
type Technician struct {
	ID              string
	Name            string
	Status          TechnicianStatus
	ActiveTaskCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the technician can be picked for new bookings
func (t *Technician) IsActive() bool {
	return t.Status == TechnicianActive
}

// IsRealTechnician is false for an empty name and for the sentinel
func IsRealTechnician(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && trimmed != UnassignedTechnician
}
