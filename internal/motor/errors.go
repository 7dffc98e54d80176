package motor

import "errors"

// Domain errors for motor and battery construction.
var (
	// ErrInvalidSpec indicates a motor spec with a non-physical constant.
	ErrInvalidSpec = errors.New("motor: invalid spec")

	// ErrInvalidBattery indicates a battery model with a non-physical
	// nominal voltage or internal resistance.
	ErrInvalidBattery = errors.New("motor: invalid battery")
)
