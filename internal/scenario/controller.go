package scenario

import (
	"math"

	"github.com/robosim-dev/swervesim/internal/drivetrain"
	"github.com/robosim-dev/swervesim/internal/geom"
	"github.com/robosim-dev/swervesim/internal/kinematics"
	"github.com/robosim-dev/swervesim/internal/module"
)

// Default steering gains. The steer mechanism is stiff; the derivative term
// damps the back-and-forth the position loop would otherwise ring with.
const (
	steerKp = 6.0
	steerKd = 0.3
)

// ModuleController closes the loop on one module: a PD position loop on the
// steer angle and a voltage feedforward on the drive wheel. It talks to the
// module exactly the way firmware talks to a physical module, through
// voltage commands and encoder readings.
type ModuleController struct {
	steer       *PID
	railVoltage float64
	maxSpeed    float64
}

// NewModuleController creates a controller for a module with the given
// no-load ground speed at the given rail voltage.
func NewModuleController(cfg module.Config, railVoltage float64) *ModuleController {
	return &ModuleController{
		steer:       NewPID(steerKp, 0, steerKd),
		railVoltage: railVoltage,
		maxSpeed:    cfg.MaxGroundSpeed(railVoltage),
	}
}

// Update applies one control period's worth of voltage commands driving the
// module toward the target state.
func (c *ModuleController) Update(m *module.Sim, target kinematics.ModuleState, dt float64) {
	// Never steer more than a quarter turn: reversing drive direction is
	// cheaper.
	angleErr := geom.AngleDifference(target.Angle.Radians(), m.SteerAbsoluteAngle().Radians())
	speed := target.Speed
	if math.Abs(angleErr) > math.Pi/2 {
		angleErr = geom.WrapAngle(angleErr + math.Pi)
		speed = -speed
	}

	m.SetSteerVoltage(c.steer.Compute(angleErr, dt))

	driveVoltage := speed / c.maxSpeed * c.railVoltage
	m.SetDriveVoltage(math.Max(-c.railVoltage, math.Min(c.railVoltage, driveVoltage)))
}

// Reset clears the steering loop state.
func (c *ModuleController) Reset() { c.steer.Reset() }

// DriveController closes the loop on a whole drivetrain: one
// ModuleController per module fed by inverse kinematics.
type DriveController struct {
	modules []*ModuleController
}

// NewDriveController builds the per-module controllers for a drivetrain.
func NewDriveController(d *drivetrain.Drivetrain, railVoltage float64) *DriveController {
	sims := d.Modules()
	controllers := make([]*ModuleController, len(sims))
	for i, m := range sims {
		controllers[i] = NewModuleController(m.Config(), railVoltage)
	}
	return &DriveController{modules: controllers}
}

// Drive commands the drivetrain toward the given robot-relative chassis
// speeds for one control period.
func (c *DriveController) Drive(d *drivetrain.Drivetrain, speeds kinematics.ChassisSpeeds, dt float64) {
	targets := d.Kinematics().ToModuleStates(speeds)
	for i, m := range d.Modules() {
		c.modules[i].Update(m, targets[i], dt)
	}
}
