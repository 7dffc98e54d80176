package motor

import (
	"math"
	"testing"
)

func newTestSim(t *testing.T) (*Sim, *Battery) {
	t.Helper()
	battery, err := NewBattery(12.0, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	sim, err := NewSim(testSpec(), battery)
	if err != nil {
		t.Fatal(err)
	}
	return sim, battery
}

func TestSimRequiresInertia(t *testing.T) {
	battery, err := NewBattery(12.0, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	spec := testSpec()
	spec.Inertia = 0

	if _, err := NewSim(spec, battery); err == nil {
		t.Error("expected error for zero inertia")
	}
}

func TestSimSpinsUp(t *testing.T) {
	sim, _ := newTestSim(t)
	sim.RequestVoltage(6.0)

	dt := 0.004
	for i := 0; i < 2000; i++ {
		sim.Update(dt)
	}

	if sim.Velocity() <= 0 {
		t.Fatalf("expected positive velocity, got %f", sim.Velocity())
	}

	// Steady state should be near the friction-limited free speed.
	want := sim.Spec().FreeSpeed(6.0)
	if math.Abs(sim.Velocity()-want) > 0.05*want {
		t.Errorf("steady state %f not near free speed %f", sim.Velocity(), want)
	}
}

func TestSimVoltageClampedToRail(t *testing.T) {
	sim, _ := newTestSim(t)
	sim.RequestVoltage(20.0)
	sim.Update(0.004)

	if sim.AppliedVoltage() > 12.0 {
		t.Errorf("applied voltage %f exceeds rail", sim.AppliedVoltage())
	}
}

func TestSimHoldsStillBelowFriction(t *testing.T) {
	sim, _ := newTestSim(t)
	// Below the friction voltage nothing should move.
	sim.RequestVoltage(0.1)

	for i := 0; i < 500; i++ {
		sim.Update(0.004)
	}

	if sim.Velocity() != 0 {
		t.Errorf("motor moved on sub-friction voltage: velocity %f", sim.Velocity())
	}
	if sim.Position() != 0 {
		t.Errorf("motor moved on sub-friction voltage: position %f", sim.Position())
	}
}

func TestSimPositionAccumulates(t *testing.T) {
	sim, _ := newTestSim(t)
	sim.RequestVoltage(12.0)

	dt := 0.004
	pos := 0.0
	for i := 0; i < 100; i++ {
		before := sim.Position()
		sim.Update(dt)
		if sim.Position() < before {
			t.Fatal("position decreased while driving forward")
		}
		pos = sim.Position()
	}

	if pos <= 0 {
		t.Errorf("expected accumulated position, got %f", pos)
	}
}
