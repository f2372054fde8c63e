package domain

import "time"

// DefaultCutoffLookAhead same-day slots starting earlier than now+lookAhead are closed
const DefaultCutoffLookAhead = time.Hour

// DefaultTimezone used when the config does not name one
const DefaultTimezone = "UTC"

// DefaultSlotLabels business-day slot grid
var DefaultSlotLabels = [][2]string{
	{"8:20 AM", "9:20 AM"},
	{"9:20 AM", "10:20 AM"},
	{"10:20 AM", "11:20 AM"},
	{"11:20 AM", "12:20 PM"},
	{"12:20 PM", "1:20 PM"},
	{"1:20 PM", "2:20 PM"},
	{"2:20 PM", "3:20 PM"},
	{"3:20 PM", "4:20 PM"},
	{"4:20 PM", "5:20 PM"},
	{"5:20 PM", "6:20 PM"},
	{"6:20 PM", "7:20 PM"},
	{"7:20 PM", "8:50 PM"},
}

// Business validation constants
const (
	MaxServiceNameLength  = 200
	MaxCustomerNameLength = 200
	MaxTechnicianNameLen  = 100
	MaxNotesLength        = 500
)
