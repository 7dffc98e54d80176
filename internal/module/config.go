package module

import (
	"fmt"
	"math"

	"github.com/robosim-dev/swervesim/internal/geom"
	"github.com/robosim-dev/swervesim/internal/motor"
)

// Config is the immutable physical description of one swerve module.
type Config struct {
	// WheelRadius is the drive wheel radius in meters.
	WheelRadius float64
	// DriveMotor and SteerMotor are the electrical constants of the two
	// motors. The steer motor spec must carry the steering mechanism's
	// moment of inertia.
	DriveMotor motor.Spec
	SteerMotor motor.Spec
	// WheelCoF is the coefficient of friction between wheel and floor.
	WheelCoF float64
	// Position is the module's mount point relative to the chassis
	// center, in meters.
	Position geom.Vector2
}

// Validate reports the first configuration error, or nil. Construction of a
// module simulation fails outright on any error; there is no partially
// constructed module.
func (c Config) Validate() error {
	if c.WheelRadius <= 0 {
		return fmt.Errorf("module: wheel radius must be positive, got %f", c.WheelRadius)
	}
	if c.WheelCoF <= 0 {
		return fmt.Errorf("module: coefficient of friction must be positive, got %f", c.WheelCoF)
	}
	if err := c.DriveMotor.Validate(); err != nil {
		return fmt.Errorf("module: drive motor: %w", err)
	}
	if err := c.SteerMotor.Validate(); err != nil {
		return fmt.Errorf("module: steer motor: %w", err)
	}
	return nil
}

// GrippingForce returns the maximum friction force the wheel can exert on
// the floor under the given normal force, in newtons. A zero normal force is
// a valid degenerate case yielding zero grip.
func (c Config) GrippingForce(normalForce float64) float64 {
	return c.WheelCoF * normalForce
}

// MaxGroundSpeed returns the no-load ground speed of the wheel at the given
// rail voltage, in m/s.
func (c Config) MaxGroundSpeed(railVoltage float64) float64 {
	return c.DriveMotor.FreeSpeed(railVoltage) * c.WheelRadius
}

// TheoreticalPropellingForce returns the force one module can put to the
// ground, limited by both the stator current limit and the available grip
// when the chassis mass is shared across moduleCount modules.
func (c Config) TheoreticalPropellingForce(chassisMass float64, moduleCount int, statorCurrentLimit float64) float64 {
	forceAtCurrentLimit := c.DriveMotor.Torque(statorCurrentLimit) / c.WheelRadius
	grip := c.GrippingForce(chassisMass * gravity / float64(moduleCount))
	return math.Min(forceAtCurrentLimit, grip)
}

const gravity = 9.8
