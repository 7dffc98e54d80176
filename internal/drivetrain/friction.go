package drivetrain

import (
	"math"

	"github.com/robosim-dev/swervesim/internal/geom"
)

const (
	// frictionForceGain scales how hard the translational friction pulls
	// the floor speed toward the module speed before hitting the grip
	// ceiling.
	frictionForceGain = 3.0

	// frictionTorqueGain is the rotational analog.
	frictionTorqueGain = 1.0

	// Below these fractions of the maximum angular velocity, rotation is
	// snapped to exactly zero instead of decaying asymptotically.
	desiredRotationDeadband = 0.01
	actualRotationDeadband  = 0.02
)

// totalGrippingForce is the grip ceiling for the whole chassis: the modules
// act as parallel friction sources, so their individual grips sum.
func (d *Drivetrain) totalGrippingForce() float64 {
	return d.cfg.Modules[0].GrippingForce(d.gravityPerModule) * float64(len(d.modules))
}

// grippingTorque is the ceiling on rotational friction: per-module grip
// acting at the module radius, over all modules.
func (d *Drivetrain) grippingTorque() float64 {
	return d.cfg.Modules[0].GrippingForce(d.gravityPerModule) *
		d.cfg.Modules[0].Position.Norm() * float64(len(d.modules))
}

// frictionForce computes the translational friction for one sub-tick and
// advances the centripetal working state.
//
// Two components: a convergence force that pulls the chassis's actual floor
// velocity toward the velocity implied by the module states, and a
// centripetal force that supplies the lateral grip needed to follow the
// curve traced by the module velocity. Their sum is clamped to the total
// grip ceiling.
func (d *Drivetrain) frictionForce(dt float64) geom.Vector2 {
	heading := d.Pose().Heading
	moduleSpeeds := d.ModuleSpeeds()

	speedsError := moduleSpeeds.Minus(d.ChassisSpeedsRobotRelative())
	speedsErrorField := speedsError.Translation().RotateBy(heading)

	totalGrip := d.totalGrippingForce()
	convergence := geom.FromPolar(
		math.Min(frictionForceGain*totalGrip*speedsErrorField.Norm(), totalGrip),
		speedsErrorField.Bearing())

	// Estimate how fast the module-implied velocity direction is turning
	// from its bearing change over the previous sub-tick.
	moduleSpeedsField := moduleSpeeds.ToFieldRelative(heading).Translation()
	dTheta := geom.AngleDifference(moduleSpeedsField.Bearing(), d.prevModuleSpeedsField.Bearing())
	orbitalVelocity := dTheta / dt

	centripetal := geom.FromPolar(
		d.prevModuleSpeedsField.Norm()*orbitalVelocity*d.cfg.Mass,
		d.prevModuleSpeedsField.Bearing()+math.Pi/2)
	d.prevModuleSpeedsField = moduleSpeedsField

	// The components may each be inside the ceiling while their sum is
	// not; the combined vector is clamped again.
	total := convergence.Add(centripetal)
	return geom.FromPolar(math.Min(totalGrip, total.Norm()), total.Bearing())
}

func (d *Drivetrain) applyFrictionForce(dt float64) {
	d.body.ApplyForceToCenter(toB2(d.frictionForce(dt)), true)
}

// frictionTorque computes the rotational friction for one sub-tick: the 1-D
// analog of the convergence force, capped by the grip-derived torque
// ceiling. snap reports that the chassis rotation should be zeroed outright
// instead: when both the desired and the actual rotation are negligible,
// asymptotic friction convergence would leave a perpetual tiny oscillation.
func (d *Drivetrain) frictionTorque() (torque float64, snap bool) {
	maxOmega := d.MaxAngularVelocity()
	desiredPercent := math.Abs(d.DesiredSpeeds().Omega / maxOmega)
	actualPercent := math.Abs(d.body.GetAngularVelocity() / maxOmega)

	if desiredPercent < desiredRotationDeadband && actualPercent < actualRotationDeadband {
		return 0, true
	}

	omegaError := d.ModuleSpeeds().Omega - d.body.GetAngularVelocity()
	gripTorque := d.grippingTorque()

	torque = math.Copysign(
		math.Min(frictionTorqueGain*gripTorque*math.Abs(omegaError), gripTorque),
		omegaError)
	return torque, false
}

func (d *Drivetrain) applyFrictionTorque() {
	torque, snap := d.frictionTorque()
	if snap {
		d.body.SetAngularVelocity(0)
		return
	}
	d.body.ApplyTorque(torque, true)
}
