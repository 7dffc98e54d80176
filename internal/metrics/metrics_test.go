package metrics

import (
	"math"
	"testing"

	"github.com/robosim-dev/swervesim/internal/drivetrain"
	"github.com/robosim-dev/swervesim/internal/geom"
	"github.com/robosim-dev/swervesim/internal/kinematics"
	"github.com/robosim-dev/swervesim/internal/scenario"
)

func TestPeakSpeed(t *testing.T) {
	m := &PeakSpeed{}

	m.Observe(scenario.Sample{Actual: kinematics.ChassisSpeeds{VX: 1.0}})
	m.Observe(scenario.Sample{Actual: kinematics.ChassisSpeeds{VX: 3.0, VY: 4.0}})
	m.Observe(scenario.Sample{Actual: kinematics.ChassisSpeeds{VX: 2.0}})

	if math.Abs(m.Value()-5.0) > 1e-12 {
		t.Errorf("expected peak 5.0, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear peak")
	}
}

func TestSlipFraction(t *testing.T) {
	m := &SlipFraction{}

	m.Observe(scenario.Sample{Slipping: 0})
	m.Observe(scenario.Sample{Slipping: 2})
	m.Observe(scenario.Sample{Slipping: 0})
	m.Observe(scenario.Sample{Slipping: 1})

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestSlipFractionEmpty(t *testing.T) {
	m := &SlipFraction{}
	if m.Value() != 0 {
		t.Error("empty metric should read 0")
	}
}

func TestDistance(t *testing.T) {
	m := &Distance{}

	at := func(x, y float64) scenario.Sample {
		return scenario.Sample{Pose: drivetrain.Pose{Position: geom.Vector2{X: x, Y: y}}}
	}

	m.Observe(at(0, 0))
	m.Observe(at(3, 0))
	m.Observe(at(3, 4))

	if math.Abs(m.Value()-7.0) > 1e-12 {
		t.Errorf("expected path length 7.0, got %f", m.Value())
	}
}

func TestControlEffort(t *testing.T) {
	m := &ControlEffort{}

	m.Observe(scenario.Sample{Time: 0.02, DriveVolts: 6.0})
	m.Observe(scenario.Sample{Time: 0.04, DriveVolts: 6.0})
	m.Observe(scenario.Sample{Time: 0.06, DriveVolts: 12.0})

	want := 6.0*0.02 + 12.0*0.02
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, m.Value())
	}
}
