package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ClockLayout is the 12-hour wall clock format used by slot definitions ("8:20 AM")
const ClockLayout = "3:04 PM"

var ErrInvalidClockTime = errors.New("types: invalid clock time")

// ClockTime is a time of day with minute precision, stored as minutes since midnight
type ClockTime int

// NewClockTime builds a ClockTime from a 24-hour hour and minute
func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d out of range", ErrInvalidClockTime, hour, minute)
	}
	return ClockTime(hour*60 + minute), nil
}

// ParseClockTime parses "h:mm AM/PM". Leading zeros and lower-case suffixes are accepted
func ParseClockTime(s string) (ClockTime, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidClockTime)
	}

	t, err := time.Parse(ClockLayout, normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidClockTime, s, err)
	}

	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// MustParseClockTime is ParseClockTime for compile-time constants
func MustParseClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) Hour() int {
	return int(c) / 60
}

func (c ClockTime) Minute() int {
	return int(c) % 60
}

// On places the clock time on the calendar day of day, in day's location
func (c ClockTime) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, day.Location())
}

func (c ClockTime) IsBefore(other ClockTime) bool {
	return c < other
}

func (c ClockTime) IsAfter(other ClockTime) bool {
	return c > other
}

// String renders the canonical "3:04 PM" form
func (c ClockTime) String() string {
	return time.Date(0, 1, 1, c.Hour(), c.Minute(), 0, 0, time.UTC).Format(ClockLayout)
}
