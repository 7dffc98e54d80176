package motor

import (
	"fmt"
	"math"
)

// Spec holds the electrical constants of a geared brushless motor driving a
// mechanism. Conversions between voltage, current, torque and velocity follow
// the linear DC motor model:
//
//	V = I*R + omega_rotor/Kv
//	tau_rotor = Kt * I
//
// The gear ratio converts between rotor and mechanism frames: mechanism
// velocity = rotor velocity / GearRatio, mechanism torque = rotor torque *
// GearRatio.
//
// A Spec is immutable after Validate passes; all conversion methods are pure.
type Spec struct {
	// Resistance is the winding resistance in ohms.
	Resistance float64
	// Kv is the velocity constant in rad/s per volt, rotor frame.
	Kv float64
	// Kt is the torque constant in N*m per amp, rotor frame.
	Kt float64
	// GearRatio is rotor revolutions per mechanism revolution (> 1 for a
	// reduction).
	GearRatio float64
	// FrictionVoltage is the voltage required to overcome the internal
	// friction of the gearbox and motor, in volts.
	FrictionVoltage float64
	// Inertia is the moment of inertia of the mechanism in kg*m^2. Only
	// used where the motor model integrates its own mechanical state (the
	// steer mechanism); zero is acceptable otherwise.
	Inertia float64
}

// Validate reports a configuration error if any physical constant is
// non-positive. Called by every constructor that embeds a Spec; a drivetrain
// never comes up with a partially valid motor.
func (s Spec) Validate() error {
	if s.Resistance <= 0 {
		return fmt.Errorf("%w: resistance %f", ErrInvalidSpec, s.Resistance)
	}
	if s.Kv <= 0 {
		return fmt.Errorf("%w: velocity constant %f", ErrInvalidSpec, s.Kv)
	}
	if s.Kt <= 0 {
		return fmt.Errorf("%w: torque constant %f", ErrInvalidSpec, s.Kt)
	}
	if s.GearRatio <= 0 {
		return fmt.Errorf("%w: gear ratio %f", ErrInvalidSpec, s.GearRatio)
	}
	if s.FrictionVoltage < 0 {
		return fmt.Errorf("%w: friction voltage %f", ErrInvalidSpec, s.FrictionVoltage)
	}
	return nil
}

// Current returns the stator current drawn at the given mechanism velocity
// (rad/s) and applied voltage.
func (s Spec) Current(mechanismVelocity, voltage float64) float64 {
	backEMF := mechanismVelocity * s.GearRatio / s.Kv
	return (voltage - backEMF) / s.Resistance
}

// Velocity returns the steady-state mechanism velocity (rad/s) while drawing
// the given current at the given applied voltage.
func (s Spec) Velocity(current, voltage float64) float64 {
	return (voltage - current*s.Resistance) * s.Kv / s.GearRatio
}

// Torque returns the mechanism torque produced by the given stator current.
func (s Spec) Torque(current float64) float64 {
	return s.Kt * current * s.GearRatio
}

// CurrentAtTorque returns the stator current needed to produce the given
// mechanism torque.
func (s Spec) CurrentAtTorque(torque float64) float64 {
	return torque / (s.Kt * s.GearRatio)
}

// FrictionTorque returns the internal friction of the gearbox expressed as a
// mechanism torque.
func (s Spec) FrictionTorque() float64 {
	return s.Torque(s.Current(0, s.FrictionVoltage))
}

// FreeSpeed returns the no-load mechanism velocity at the given voltage,
// accounting for internal friction.
func (s Spec) FreeSpeed(voltage float64) float64 {
	return s.Velocity(s.CurrentAtTorque(s.FrictionTorque()), voltage)
}

// ApplyDeadband subtracts a static friction torque from a produced torque.
// The result is an odd function of torque with a dead zone: magnitudes at or
// below the friction threshold are zeroed, larger magnitudes are reduced by
// the threshold, preserving sign. There is no discontinuity at the threshold.
func ApplyDeadband(torque, frictionTorque float64) float64 {
	if math.Abs(torque) <= frictionTorque {
		return 0
	}
	return torque - math.Copysign(frictionTorque, torque)
}
