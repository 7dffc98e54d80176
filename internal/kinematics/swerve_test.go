package kinematics

import (
	"math"
	"testing"

	"github.com/robosim-dev/swervesim/internal/geom"
)

func squareDrive() *Swerve {
	k, err := NewSwerve(
		geom.Vector2{X: 0.3, Y: 0.3},
		geom.Vector2{X: 0.3, Y: -0.3},
		geom.Vector2{X: -0.3, Y: 0.3},
		geom.Vector2{X: -0.3, Y: -0.3},
	)
	if err != nil {
		panic(err)
	}
	return k
}

func TestNewSwerveRejectsSingleModule(t *testing.T) {
	if _, err := NewSwerve(geom.Vector2{X: 0.3, Y: 0.3}); err == nil {
		t.Error("expected error for single-module drivetrain")
	}
}

func TestPureTranslation(t *testing.T) {
	k := squareDrive()
	states := k.ToModuleStates(ChassisSpeeds{VX: 2.0})

	for i, s := range states {
		if math.Abs(s.Speed-2.0) > 1e-9 {
			t.Errorf("module %d: expected speed 2.0, got %f", i, s.Speed)
		}
		if math.Abs(geom.WrapAngle(s.Angle.Radians())) > 1e-9 {
			t.Errorf("module %d: expected angle 0, got %f", i, s.Angle.Radians())
		}
	}
}

func TestPureRotationTangential(t *testing.T) {
	k := squareDrive()
	omega := 1.5
	states := k.ToModuleStates(ChassisSpeeds{Omega: omega})

	radius := math.Hypot(0.3, 0.3)
	for i, s := range states {
		if math.Abs(s.Speed-omega*radius) > 1e-9 {
			t.Errorf("module %d: expected speed %f, got %f", i, omega*radius, s.Speed)
		}
	}

	// Module velocity must be perpendicular to the module position vector.
	for i, p := range k.Positions() {
		v := geom.FromPolar(states[i].Speed, states[i].Angle.Radians())
		if math.Abs(v.Dot(p)) > 1e-9 {
			t.Errorf("module %d: velocity not tangential, dot %f", i, v.Dot(p))
		}
	}
}

func TestRoundTrip(t *testing.T) {
	k := squareDrive()
	want := ChassisSpeeds{VX: 1.2, VY: -0.7, Omega: 2.1}

	got, err := k.ToChassisSpeeds(k.ToModuleStates(want))
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(got.VX-want.VX) > 1e-9 ||
		math.Abs(got.VY-want.VY) > 1e-9 ||
		math.Abs(got.Omega-want.Omega) > 1e-9 {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestModuleCountMismatch(t *testing.T) {
	k := squareDrive()

	if _, err := k.ToChassisSpeeds(make([]ModuleState, 3)); err == nil {
		t.Error("expected error for module count mismatch")
	}
}

func TestFieldRobotRelativeRoundTrip(t *testing.T) {
	heading := geom.NewRotation2(math.Pi / 3)
	speeds := ChassisSpeeds{VX: 1.0, VY: 0.5, Omega: 0.2}

	back := speeds.ToFieldRelative(heading).ToRobotRelative(heading)

	if math.Abs(back.VX-speeds.VX) > 1e-12 || math.Abs(back.VY-speeds.VY) > 1e-12 {
		t.Errorf("frame round trip mismatch: got %+v", back)
	}
}
