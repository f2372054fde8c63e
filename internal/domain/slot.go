package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashScheduler/pkg/types"
)

// SlotDefinition is one fixed bookable interval of the business day
type SlotDefinition struct {
	Start types.ClockTime
	End   types.ClockTime
}

// Label renders "{start} - {end}"
func (d SlotDefinition) Label() string {
	return fmt.Sprintf("%s - %s", d.Start, d.End)
}

// ParseSlotDefinitions parses ("h:mm AM", "h:mm PM") pairs, keeping their order
func ParseSlotDefinitions(pairs [][2]string) ([]SlotDefinition, error) {
	defs := make([]SlotDefinition, 0, len(pairs))
	for i, pair := range pairs {
		start, err := types.ParseClockTime(pair[0])
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d start: %v", ErrInvalidSlotDefinition, i, err)
		}
		end, err := types.ParseClockTime(pair[1])
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d end: %v", ErrInvalidSlotDefinition, i, err)
		}
		if !end.IsAfter(start) {
			return nil, fmt.Errorf("%w: slot %d ends at %s, before it starts at %s", ErrInvalidSlotDefinition, i, end, start)
		}
		defs = append(defs, SlotDefinition{Start: start, End: end})
	}
	return defs, nil
}

// DefaultSlotDefinitions is the observed business-day grid: 12 slots from 8:20 AM to 8:50 PM
func DefaultSlotDefinitions() []SlotDefinition {
	defs, err := ParseSlotDefinitions(DefaultSlotLabels)
	if err != nil {
		panic(err)
	}
	return defs
}

// SlotView is one entry of a computed day grid
type SlotView struct {
	Label        string    // "8:20 AM - 9:20 AM"
	StartTime    string    // "8:20 AM"
	StartsAt     time.Time // slot start on the target day
	Available    bool      // no bookings and not past the same-day cutoff
	PastCutoff   bool      // today and starting within the look-ahead window
	BookingCount int       // non-cancelled appointments at StartsAt
}
