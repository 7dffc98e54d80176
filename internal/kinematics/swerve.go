// Package kinematics maps between chassis speeds and per-module states for a
// swerve drivetrain.
//
// The inverse mapping (chassis speeds to module states) is a fixed 2Nx3
// matrix built from the module positions. The forward mapping (module states
// to chassis speeds) solves the over-determined system in the least-squares
// sense, which averages out disagreement between modules caused by slip or
// measurement noise.
package kinematics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/robosim-dev/swervesim/internal/geom"
)

// ModuleState is the speed (m/s along the wheel direction) and absolute
// angle of one module.
type ModuleState struct {
	Speed float64
	Angle geom.Rotation2
}

// ChassisSpeeds is the planar velocity of the chassis: vx, vy in m/s and
// omega in rad/s. The frame (robot- or field-relative) is by convention of
// the caller; ToFieldRelative and ToRobotRelative convert between the two.
type ChassisSpeeds struct {
	VX    float64
	VY    float64
	Omega float64
}

// Minus returns the component-wise difference s - other.
func (s ChassisSpeeds) Minus(other ChassisSpeeds) ChassisSpeeds {
	return ChassisSpeeds{
		VX:    s.VX - other.VX,
		VY:    s.VY - other.VY,
		Omega: s.Omega - other.Omega,
	}
}

// Translation returns the translational component as a vector.
func (s ChassisSpeeds) Translation() geom.Vector2 {
	return geom.Vector2{X: s.VX, Y: s.VY}
}

// ToFieldRelative rotates robot-relative speeds into the field frame given
// the robot heading.
func (s ChassisSpeeds) ToFieldRelative(heading geom.Rotation2) ChassisSpeeds {
	v := s.Translation().RotateBy(heading)
	return ChassisSpeeds{VX: v.X, VY: v.Y, Omega: s.Omega}
}

// ToRobotRelative rotates field-relative speeds into the robot frame given
// the robot heading.
func (s ChassisSpeeds) ToRobotRelative(heading geom.Rotation2) ChassisSpeeds {
	v := s.Translation().RotateBy(geom.NewRotation2(-heading.Radians()))
	return ChassisSpeeds{VX: v.X, VY: v.Y, Omega: s.Omega}
}

// Swerve holds the kinematics of a drivetrain with N modules at fixed
// positions relative to the chassis center. Immutable after construction.
type Swerve struct {
	positions []geom.Vector2
	inverse   *mat.Dense // 2N x 3
}

// NewSwerve builds the kinematics for modules at the given positions
// (meters, chassis frame). At least two modules are required.
func NewSwerve(positions ...geom.Vector2) (*Swerve, error) {
	n := len(positions)
	if n < 2 {
		return nil, fmt.Errorf("kinematics: need at least 2 modules, got %d", n)
	}

	inverse := mat.NewDense(2*n, 3, nil)
	for i, p := range positions {
		inverse.SetRow(2*i, []float64{1, 0, -p.Y})
		inverse.SetRow(2*i+1, []float64{0, 1, p.X})
	}

	return &Swerve{
		positions: append([]geom.Vector2(nil), positions...),
		inverse:   inverse,
	}, nil
}

// ModuleCount returns the number of modules.
func (k *Swerve) ModuleCount() int { return len(k.positions) }

// Positions returns the module positions in the chassis frame.
func (k *Swerve) Positions() []geom.Vector2 {
	return append([]geom.Vector2(nil), k.positions...)
}

// ToModuleStates computes the module state each module must hold for the
// chassis to move at the given robot-relative speeds.
func (k *Swerve) ToModuleStates(speeds ChassisSpeeds) []ModuleState {
	chassis := mat.NewVecDense(3, []float64{speeds.VX, speeds.VY, speeds.Omega})

	var wheels mat.VecDense
	wheels.MulVec(k.inverse, chassis)

	states := make([]ModuleState, len(k.positions))
	for i := range states {
		v := geom.Vector2{X: wheels.AtVec(2 * i), Y: wheels.AtVec(2*i + 1)}
		states[i] = ModuleState{
			Speed: v.Norm(),
			Angle: geom.NewRotation2(v.Bearing()),
		}
	}
	return states
}

// ToChassisSpeeds estimates the robot-relative chassis speeds implied by the
// given module states, as the least-squares solution of the over-determined
// kinematic system.
func (k *Swerve) ToChassisSpeeds(states []ModuleState) (ChassisSpeeds, error) {
	n := len(k.positions)
	if len(states) != n {
		return ChassisSpeeds{}, fmt.Errorf("kinematics: got %d module states, expected %d", len(states), n)
	}

	wheels := mat.NewVecDense(2*n, nil)
	for i, s := range states {
		wheels.SetVec(2*i, s.Speed*s.Angle.Cos())
		wheels.SetVec(2*i+1, s.Speed*s.Angle.Sin())
	}

	var chassis mat.VecDense
	if err := chassis.SolveVec(k.inverse, wheels); err != nil {
		return ChassisSpeeds{}, fmt.Errorf("kinematics: forward solve: %w", err)
	}

	return ChassisSpeeds{
		VX:    chassis.AtVec(0),
		VY:    chassis.AtVec(1),
		Omega: chassis.AtVec(2),
	}, nil
}
