// Package drivetrain composes N swerve module simulations into a chassis on
// the rigid-body world.
//
// Each physics sub-tick the composer applies the chassis friction force and
// torque, pulls a propelling force out of every module and applies it at the
// module's world position, and advances the heading sensor. The rigid-body
// backend integrates the resulting motion; the composer only ever touches
// the body through forces, torques and velocity writes.
package drivetrain

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"

	"github.com/robosim-dev/swervesim/internal/arena"
	"github.com/robosim-dev/swervesim/internal/geom"
	"github.com/robosim-dev/swervesim/internal/kinematics"
	"github.com/robosim-dev/swervesim/internal/module"
	"github.com/robosim-dev/swervesim/internal/motor"
)

const (
	gravity = 9.8

	// Rolling and air resistance, set once on the body at construction.
	linearDamping  = 1.4
	angularDamping = 1.4
)

// Pose is a planar position and heading in the world frame.
type Pose struct {
	Position geom.Vector2
	Heading  geom.Rotation2
}

// Config describes a swerve drivetrain. Module mount positions come from the
// per-module configs; the chassis footprint is the bumper rectangle.
type Config struct {
	// Mass is the full chassis mass in kg.
	Mass float64
	// Width and Length are the bumper dimensions in meters. Width spans
	// the Y axis of the robot frame, Length the X axis.
	Width  float64
	Length float64
	// Modules describes each module; at least two are required.
	Modules []module.Config
	// GyroDrift is the standard deviation of the heading sensor's
	// random-walk drift, in rad/sqrt(s). Zero disables drift.
	GyroDrift float64
}

// Validate reports the first configuration error, or nil.
func (c Config) Validate() error {
	if c.Mass <= 0 {
		return fmt.Errorf("drivetrain: mass must be positive, got %f", c.Mass)
	}
	if c.Width <= 0 || c.Length <= 0 {
		return fmt.Errorf("drivetrain: bumper dimensions must be positive, got %fx%f", c.Length, c.Width)
	}
	if len(c.Modules) < 2 {
		return fmt.Errorf("drivetrain: need at least 2 modules, got %d", len(c.Modules))
	}
	for i, m := range c.Modules {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("drivetrain: module %d: %w", i, err)
		}
	}
	return nil
}

// Drivetrain is one simulated swerve chassis. Single-threaded: all mutation
// happens inside SimulationSubTick, driven by the arena.
type Drivetrain struct {
	cfg     Config
	battery *motor.Battery
	body    *box2d.B2Body
	modules []*module.Sim
	kin     *kinematics.Swerve
	gyro    *Gyro

	gravityPerModule float64

	// Previous sub-tick's module-implied ground velocity, field frame.
	// Working state of the centripetal friction estimate.
	prevModuleSpeedsField geom.Vector2
}

// New constructs a drivetrain, creates its rigid body in the arena's world
// and registers it for sub-tick stepping. Construction is all-or-nothing: on
// any configuration error no body is created.
func New(a *arena.Arena, battery *motor.Battery, cfg Config, initialPose Pose) (*Drivetrain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	positions := make([]geom.Vector2, len(cfg.Modules))
	for i, m := range cfg.Modules {
		positions[i] = m.Position
	}
	kin, err := kinematics.NewSwerve(positions...)
	if err != nil {
		return nil, err
	}

	modules := make([]*module.Sim, len(cfg.Modules))
	for i, mc := range cfg.Modules {
		sim, err := module.NewSim(mc, battery, a.Timing().SubTicks)
		if err != nil {
			return nil, fmt.Errorf("drivetrain: module %d: %w", i, err)
		}
		modules[i] = sim
	}

	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position.Set(initialPose.Position.X, initialPose.Position.Y)
	bd.Angle = initialPose.Heading.Radians()
	bd.LinearDamping = linearDamping
	bd.AngularDamping = angularDamping
	bd.AllowSleep = false
	body := a.World().CreateBody(&bd)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(cfg.Length/2, cfg.Width/2)
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = cfg.Mass / (cfg.Width * cfg.Length)
	fd.Friction = cfg.Modules[0].WheelCoF
	body.CreateFixtureFromDef(&fd)

	d := &Drivetrain{
		cfg:              cfg,
		battery:          battery,
		body:             body,
		modules:          modules,
		kin:              kin,
		gyro:             NewGyro(cfg.GyroDrift, a.Timing().SubTicks),
		gravityPerModule: cfg.Mass * gravity / float64(len(cfg.Modules)),
	}
	a.Register(d)
	return d, nil
}

// SimulationSubTick runs one full simulation sub-tick: chassis friction,
// module propulsion, heading sensor. Called by the arena; forces land on the
// body before the arena integrates the world.
func (d *Drivetrain) SimulationSubTick(dt float64) {
	d.applyFrictionForce(dt)
	d.applyFrictionTorque()
	d.applyModuleForces(dt)
	d.gyro.Update(d.body.GetAngularVelocity(), dt)
}

// applyModuleForces updates every module and applies its propelling force at
// the module's world position, inducing both force and torque on the body.
func (d *Drivetrain) applyModuleForces(dt float64) {
	heading := d.Pose().Heading
	for _, m := range d.modules {
		worldPos := d.body.GetWorldPoint(toB2(m.Config().Position))
		groundVel := d.body.GetLinearVelocityFromWorldPoint(worldPos)

		force := m.Update(fromB2(groundVel), heading, d.gravityPerModule, dt)
		d.body.ApplyForce(toB2(force), worldPos, true)
	}
}

// Pose returns the chassis pose in the world frame.
func (d *Drivetrain) Pose() Pose {
	return Pose{
		Position: fromB2(d.body.GetPosition()),
		Heading:  geom.NewRotation2(d.body.GetAngle()),
	}
}

// SetPose teleports the chassis and zeroes its velocities. This is a world
// reset, not a normal simulation event; module state is untouched.
func (d *Drivetrain) SetPose(pose Pose) {
	d.body.SetTransform(toB2(pose.Position), pose.Heading.Radians())
	d.body.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
	d.body.SetAngularVelocity(0)
	d.prevModuleSpeedsField = geom.Vector2{}
}

// ChassisSpeedsFieldRelative returns the actual rigid-body velocity of the
// chassis in the field frame.
func (d *Drivetrain) ChassisSpeedsFieldRelative() kinematics.ChassisSpeeds {
	v := fromB2(d.body.GetLinearVelocity())
	return kinematics.ChassisSpeeds{VX: v.X, VY: v.Y, Omega: d.body.GetAngularVelocity()}
}

// ChassisSpeedsRobotRelative returns the actual rigid-body velocity of the
// chassis in the robot frame.
func (d *Drivetrain) ChassisSpeedsRobotRelative() kinematics.ChassisSpeeds {
	return d.ChassisSpeedsFieldRelative().ToRobotRelative(d.Pose().Heading)
}

// ModuleStates returns the current state of every module.
func (d *Drivetrain) ModuleStates() []kinematics.ModuleState {
	states := make([]kinematics.ModuleState, len(d.modules))
	for i, m := range d.modules {
		states[i] = m.State()
	}
	return states
}

// ModuleSpeeds returns the robot-relative chassis speeds implied by the
// current module states. These differ from the floor speeds when a wheel is
// skidding.
func (d *Drivetrain) ModuleSpeeds() kinematics.ChassisSpeeds {
	// The kinematic system is full rank by construction, the solve
	// cannot fail.
	speeds, _ := d.kin.ToChassisSpeeds(d.ModuleStates())
	return speeds
}

// DesiredSpeeds returns the chassis speeds the modules are trying to reach:
// the forward kinematics of every module's free-spin state. Holding the
// current voltages and steer angles long enough converges to these speeds.
func (d *Drivetrain) DesiredSpeeds() kinematics.ChassisSpeeds {
	states := make([]kinematics.ModuleState, len(d.modules))
	for i, m := range d.modules {
		states[i] = m.FreeSpinState()
	}
	speeds, _ := d.kin.ToChassisSpeeds(states)
	return speeds
}

// Modules returns the module simulations, in configuration order. The
// control layer uses these to apply voltages and read encoders.
func (d *Drivetrain) Modules() []*module.Sim {
	return append([]*module.Sim(nil), d.modules...)
}

// Gyro returns the simulated heading sensor.
func (d *Drivetrain) Gyro() *Gyro { return d.gyro }

// Kinematics returns the drivetrain's kinematics mapping.
func (d *Drivetrain) Kinematics() *kinematics.Swerve { return d.kin }

// Mass returns the chassis mass in kg.
func (d *Drivetrain) Mass() float64 { return d.cfg.Mass }

// DriveBaseRadius returns the distance from the chassis center to the
// farthest module.
func (d *Drivetrain) DriveBaseRadius() float64 {
	radius := 0.0
	for _, m := range d.cfg.Modules {
		radius = math.Max(radius, m.Position.Norm())
	}
	return radius
}

// MaxLinearVelocity returns the chassis's no-load top speed at nominal rail
// voltage, in m/s.
func (d *Drivetrain) MaxLinearVelocity() float64 {
	return d.cfg.Modules[0].MaxGroundSpeed(d.battery.Nominal())
}

// MaxLinearAcceleration returns the grip- and current-limited acceleration
// with every module pushing the same direction, in m/s^2.
func (d *Drivetrain) MaxLinearAcceleration(statorCurrentLimit float64) float64 {
	n := len(d.modules)
	force := d.cfg.Modules[0].TheoreticalPropellingForce(d.cfg.Mass, n, statorCurrentLimit)
	return force * float64(n) / d.cfg.Mass
}

// MaxAngularVelocity returns the top spin rate with all modules tangential,
// in rad/s.
func (d *Drivetrain) MaxAngularVelocity() float64 {
	return d.MaxLinearVelocity() / d.DriveBaseRadius()
}

// MaxAngularAcceleration returns the grip- and current-limited angular
// acceleration, in rad/s^2.
func (d *Drivetrain) MaxAngularAcceleration(statorCurrentLimit float64) float64 {
	n := len(d.modules)
	force := d.cfg.Modules[0].TheoreticalPropellingForce(d.cfg.Mass, n, statorCurrentLimit)
	return force * d.cfg.Modules[0].Position.Norm() * float64(n) / d.body.GetInertia()
}

func toB2(v geom.Vector2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X, v.Y)
}

func fromB2(v box2d.B2Vec2) geom.Vector2 {
	return geom.Vector2{X: v.X, Y: v.Y}
}
