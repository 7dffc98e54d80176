// Package module simulates a single swerve module: a steered, motor-driven
// wheel with grip-limited ground contact and sub-tick encoder caching.
//
// The module is the bridge between control code and the physics world. The
// control layer applies voltages to the drive and steer motors and reads
// encoder values back, exactly as it would with physical hardware. The
// drivetrain composer feeds the module its ground velocity each sub-tick and
// applies the returned propelling force to the rigid body.
package module

import (
	"math"
	"math/rand"

	"github.com/robosim-dev/swervesim/internal/geom"
	"github.com/robosim-dev/swervesim/internal/kinematics"
	"github.com/robosim-dev/swervesim/internal/motor"
)

// slipBlend is the weight of the ground-projected speed when a skidding
// wheel's speed is blended against the motor's equilibrium speed. The fixed
// 50/50 split approximates the wheel over- or under-spinning the floor
// without a full slip-ratio tire model.
const slipBlend = 0.5

// Sim is the dynamic state of one swerve module. One instance per physical
// module, owned by the drivetrain composer; not safe for concurrent use.
type Sim struct {
	cfg     Config
	battery *motor.Battery
	steer   *motor.Sim

	wheelPosition     float64 // accumulated wheel angle, radians
	wheelVelocity     float64 // rad/s
	driveRequested    float64
	driveApplied      float64
	driveStator       float64
	slipping          bool
	steerSensorOffset float64

	wheelPositionCache *ring
	steerAngleCache    *ring
}

// NewSim constructs a module simulation. cacheDepth is the number of physics
// sub-ticks per control period; both encoder caches hold exactly that many
// samples for the lifetime of the module, pre-filled with the initial
// readings so consumers never see a cold-start discontinuity.
func NewSim(cfg Config, battery *motor.Battery, cacheDepth int) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steer, err := motor.NewSim(cfg.SteerMotor, battery)
	if err != nil {
		return nil, err
	}

	s := &Sim{
		cfg:     cfg,
		battery: battery,
		steer:   steer,
		// Relative steer encoders power on at an arbitrary angle.
		steerSensorOffset:  (rand.Float64() - 0.5) * 30,
		wheelPositionCache: newRing(cacheDepth, 0),
		steerAngleCache:    newRing(cacheDepth, steer.Position()),
	}
	battery.AddAppliance(s.DriveSupplyCurrent)
	return s, nil
}

// Config returns the module's immutable configuration.
func (s *Sim) Config() Config { return s.cfg }

// SetDriveVoltage sets the drive motor's requested output for subsequent
// sub-ticks. The external control layer is responsible for bounding the
// request; the module clamps only at the supply rail.
func (s *Sim) SetDriveVoltage(voltage float64) { s.driveRequested = voltage }

// SetSteerVoltage sets the steer motor's requested output.
func (s *Sim) SetSteerVoltage(voltage float64) { s.steer.RequestVoltage(voltage) }

// Update advances the module by one physics sub-tick and returns the
// propelling force the wheel exerts on the chassis, in the world frame.
//
// groundVelocity is the world-frame velocity of the floor contact point,
// robotHeading the chassis heading, normalForce the load carried by this
// module in newtons.
func (s *Sim) Update(groundVelocity geom.Vector2, robotHeading geom.Rotation2, normalForce, dt float64) geom.Vector2 {
	// Step 1: steer mechanism.
	s.steer.Update(dt)

	// Step 2: available grip.
	grip := s.cfg.GrippingForce(normalForce)
	worldFacing := geom.NewRotation2(s.steer.Position()).Plus(robotHeading)

	// Step 3: candidate propelling force from the drive motor.
	force := s.driveWheelTorque() / s.cfg.WheelRadius

	// Step 4: grip test. A saturated wheel skids: its force clamps to the
	// grip limit and its speed departs from the floor.
	s.slipping = math.Abs(force) > grip
	if s.slipping {
		force = math.Copysign(grip, force)
	}

	floorProjection := groundVelocity.Dot(worldFacing.Unit())
	s.wheelVelocity = floorProjection / s.cfg.WheelRadius

	if s.slipping {
		equilibrium := s.cfg.DriveMotor.Velocity(
			s.cfg.DriveMotor.CurrentAtTorque(force*s.cfg.WheelRadius),
			s.driveApplied)
		s.wheelVelocity = slipBlend*s.wheelVelocity + (1-slipBlend)*equilibrium
	}

	// Step 5: integrate and cache encoder readings.
	s.wheelPosition += s.wheelVelocity * dt
	s.wheelPositionCache.push(s.wheelPosition)
	s.steerAngleCache.push(s.steer.Position())

	return geom.FromPolar(force, worldFacing.Radians())
}

// driveWheelTorque computes the torque the drive motor puts on the wheel
// this sub-tick, after rail clamping and the friction deadband.
func (s *Sim) driveWheelTorque() float64 {
	s.driveApplied = s.battery.Clamp(s.driveRequested)
	s.driveStator = s.cfg.DriveMotor.Current(s.wheelVelocity, s.driveApplied)

	torque := s.cfg.DriveMotor.Torque(s.driveStator)
	return motor.ApplyDeadband(torque, s.cfg.DriveMotor.FrictionTorque())
}

// Slipping reports whether the module exceeded its grip limit on the last
// sub-tick.
func (s *Sim) Slipping() bool { return s.slipping }

// State returns the module's current ground speed (m/s) and absolute steer
// angle.
func (s *Sim) State() kinematics.ModuleState {
	return kinematics.ModuleState{
		Speed: s.wheelVelocity * s.cfg.WheelRadius,
		Angle: s.SteerAbsoluteAngle(),
	}
}

// FreeSpinState returns the state the module would settle into if it spun up
// indefinitely at the last applied drive voltage with only internal friction
// opposing it. The composer uses it to estimate the chassis's intended speed
// independent of floor interaction.
func (s *Sim) FreeSpinState() kinematics.ModuleState {
	speed := s.cfg.DriveMotor.Velocity(
		s.cfg.DriveMotor.CurrentAtTorque(s.cfg.DriveMotor.FrictionTorque()),
		s.driveApplied)
	return kinematics.ModuleState{
		Speed: speed * s.cfg.WheelRadius,
		Angle: s.SteerAbsoluteAngle(),
	}
}

// WheelPosition returns the accumulated drive wheel angle in radians.
func (s *Sim) WheelPosition() float64 { return s.wheelPosition }

// WheelVelocity returns the drive wheel angular velocity in rad/s.
func (s *Sim) WheelVelocity() float64 { return s.wheelVelocity }

// DriveEncoderPosition returns the drive motor rotor angle in radians: the
// wheel angle multiplied up through the gearing.
func (s *Sim) DriveEncoderPosition() float64 {
	return s.wheelPosition * s.cfg.DriveMotor.GearRatio
}

// DriveEncoderVelocity returns the drive rotor angular velocity in rad/s.
func (s *Sim) DriveEncoderVelocity() float64 {
	return s.wheelVelocity * s.cfg.DriveMotor.GearRatio
}

// SteerAbsoluteAngle returns the steer mechanism's absolute facing.
func (s *Sim) SteerAbsoluteAngle() geom.Rotation2 {
	return geom.NewRotation2(s.steer.Position()).Wrapped()
}

// SteerRelativePosition returns the steer rotor angle as a relative encoder
// would report it: geared up and offset by the encoder's arbitrary power-on
// zero.
func (s *Sim) SteerRelativePosition() float64 {
	return s.steer.Position()*s.cfg.SteerMotor.GearRatio + s.steerSensorOffset
}

// SteerVelocity returns the steer mechanism angular velocity in rad/s.
func (s *Sim) SteerVelocity() float64 { return s.steer.Velocity() }

// DriveAppliedVoltage returns the rail-clamped drive voltage from the last
// sub-tick.
func (s *Sim) DriveAppliedVoltage() float64 { return s.driveApplied }

// SteerAppliedVoltage returns the rail-clamped steer voltage from the last
// sub-tick.
func (s *Sim) SteerAppliedVoltage() float64 { return s.steer.AppliedVoltage() }

// DriveStatorCurrent returns the drive motor stator current from the last
// sub-tick.
func (s *Sim) DriveStatorCurrent() float64 { return s.driveStator }

// DriveSupplyCurrent returns the current the drive motor draws from the
// battery.
func (s *Sim) DriveSupplyCurrent() float64 {
	return s.driveStator * s.driveApplied / s.battery.Nominal()
}

// SteerStatorCurrent returns the steer motor stator current from the last
// sub-tick.
func (s *Sim) SteerStatorCurrent() float64 { return s.steer.StatorCurrent() }

// CachedWheelPositions returns the per-sub-tick wheel angle samples from the
// last control period, oldest first. The returned slice is a snapshot; it
// remains valid across later ticks.
func (s *Sim) CachedWheelPositions() []float64 {
	return s.wheelPositionCache.snapshot()
}

// CachedDriveEncoderPositions returns the cached wheel angles geared up to
// rotor angles, oldest first.
func (s *Sim) CachedDriveEncoderPositions() []float64 {
	out := s.wheelPositionCache.snapshot()
	for i := range out {
		out[i] *= s.cfg.DriveMotor.GearRatio
	}
	return out
}

// CachedSteerAbsoluteAngles returns the per-sub-tick absolute steer facings
// from the last control period, oldest first.
func (s *Sim) CachedSteerAbsoluteAngles() []geom.Rotation2 {
	raw := s.steerAngleCache.snapshot()
	out := make([]geom.Rotation2, len(raw))
	for i, v := range raw {
		out[i] = geom.NewRotation2(v).Wrapped()
	}
	return out
}

// CachedSteerRelativePositions returns the cached steer readings as the
// relative encoder would report them, oldest first.
func (s *Sim) CachedSteerRelativePositions() []float64 {
	out := s.steerAngleCache.snapshot()
	for i := range out {
		out[i] = out[i]*s.cfg.SteerMotor.GearRatio + s.steerSensorOffset
	}
	return out
}

// CacheDepth returns the fixed length of the encoder caches.
func (s *Sim) CacheDepth() int { return s.wheelPositionCache.len() }
