package domain

import "errors"

var (
	// ErrUnknownStatus is returned for status values outside the known set
	ErrUnknownStatus = errors.New("domain: unknown status")

	// ErrInvalidSlotDefinition is returned when a slot's labels do not parse or its end is not after its start
	ErrInvalidSlotDefinition = errors.New("domain: invalid slot definition")
)
