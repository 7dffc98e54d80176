package motor

// Sim simulates a motor that owns its own mechanical state: the steer
// mechanism of a swerve module. Each sub-tick it clamps the requested voltage
// to the supply rail, computes the stator current and the friction-reduced
// torque, and integrates the mechanism velocity and position.
//
// Drive wheels are not simulated with this type. Wheel slip decouples the
// drive wheel's motion from the motor's own free-running solution, so the
// module simulator owns drive mechanics and uses Spec conversions directly.
type Sim struct {
	spec    Spec
	battery *Battery

	requestedVoltage float64
	appliedVoltage   float64
	statorCurrent    float64
	position         float64
	velocity         float64
}

// NewSim creates a motor simulation drawing from the given battery. The
// motor registers its supply current draw with the battery so that heavy
// loads sag the rail for everyone.
func NewSim(spec Spec, battery *Battery) (*Sim, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Inertia <= 0 {
		return nil, ErrInvalidSpec
	}
	sim := &Sim{spec: spec, battery: battery}
	battery.AddAppliance(sim.SupplyCurrent)
	return sim, nil
}

// RequestVoltage sets the control-loop output for subsequent sub-ticks. The
// value is clamped to the rail at update time, not here, so that rail sag
// between ticks is honored.
func (m *Sim) RequestVoltage(voltage float64) {
	m.requestedVoltage = voltage
}

// Update advances the mechanism by one sub-tick of dt seconds.
func (m *Sim) Update(dt float64) {
	m.appliedVoltage = m.battery.Clamp(m.requestedVoltage)
	m.statorCurrent = m.spec.Current(m.velocity, m.appliedVoltage)

	torque := ApplyDeadband(m.spec.Torque(m.statorCurrent), m.spec.FrictionTorque())

	m.velocity += torque / m.spec.Inertia * dt
	m.position += m.velocity * dt
}

// Spec returns the motor's electrical constants.
func (m *Sim) Spec() Spec { return m.spec }

// Position returns the accumulated mechanism angle in radians (continuous,
// not wrapped).
func (m *Sim) Position() float64 { return m.position }

// Velocity returns the mechanism angular velocity in rad/s.
func (m *Sim) Velocity() float64 { return m.velocity }

// AppliedVoltage returns the rail-clamped voltage from the last sub-tick.
func (m *Sim) AppliedVoltage() float64 { return m.appliedVoltage }

// StatorCurrent returns the stator current from the last sub-tick.
func (m *Sim) StatorCurrent() float64 { return m.statorCurrent }

// SupplyCurrent returns the current drawn from the battery. It differs from
// the stator current by the duty-cycle ratio of the applied voltage to the
// nominal rail. The nominal rail is used rather than the sagged rail so that
// the battery can poll appliances while computing the sag.
func (m *Sim) SupplyCurrent() float64 {
	return m.statorCurrent * m.appliedVoltage / m.battery.nominal
}
