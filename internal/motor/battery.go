package motor

import (
	"fmt"
	"math"
)

// Appliance reports the supply current a consumer is presently drawing, in
// amps. Registered appliances drag the rail down through the battery's
// internal resistance.
type Appliance func() float64

// Battery models the shared supply rail. The instantaneous rail voltage sags
// below nominal in proportion to the total current drawn by all registered
// appliances, and never drops below the brownout floor.
//
// A single Battery instance is shared by every motor in a simulation; it is
// constructed before any module and must not be replaced afterwards.
type Battery struct {
	nominal    float64
	resistance float64
	brownout   float64
	appliances []Appliance
}

// NewBattery creates a supply model with the given nominal rail voltage and
// internal resistance (ohms).
func NewBattery(nominalVoltage, internalResistance float64) (*Battery, error) {
	if nominalVoltage <= 0 {
		return nil, fmt.Errorf("%w: nominal voltage %f", ErrInvalidBattery, nominalVoltage)
	}
	if internalResistance < 0 {
		return nil, fmt.Errorf("%w: internal resistance %f", ErrInvalidBattery, internalResistance)
	}
	return &Battery{
		nominal:    nominalVoltage,
		resistance: internalResistance,
		brownout:   nominalVoltage / 2,
	}, nil
}

// AddAppliance registers a supply-current source that contributes to rail
// sag. Typically called once per motor at construction.
func (b *Battery) AddAppliance(a Appliance) {
	b.appliances = append(b.appliances, a)
}

// Nominal returns the nominal rail voltage.
func (b *Battery) Nominal() float64 { return b.nominal }

// Voltage returns the instantaneous rail voltage, sagged by the total
// appliance draw and floored at the brownout voltage.
func (b *Battery) Voltage() float64 {
	total := 0.0
	for _, a := range b.appliances {
		// Regenerative (negative) currents do not raise the rail.
		total += math.Max(0, a())
	}
	sagged := b.nominal - total*b.resistance
	return math.Max(b.brownout, sagged)
}

// Clamp limits a requested motor voltage to what the rail can presently
// supply, in either polarity.
func (b *Battery) Clamp(requested float64) float64 {
	rail := b.Voltage()
	return math.Max(-rail, math.Min(rail, requested))
}
