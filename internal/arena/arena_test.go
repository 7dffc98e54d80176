package arena

import (
	"math"
	"testing"
)

type countingSteppable struct {
	calls int
	dt    float64
}

func (c *countingSteppable) SimulationSubTick(dt float64) {
	c.calls++
	c.dt = dt
}

func TestSubTickDt(t *testing.T) {
	timing := Timing{Period: 0.02, SubTicks: 5}

	if dt := timing.SubTickDt(); math.Abs(dt-0.004) > 1e-12 {
		t.Errorf("expected 0.004, got %f", dt)
	}
}

func TestStepRunsAllSubTicks(t *testing.T) {
	a := New()
	c := &countingSteppable{}
	a.Register(c)

	a.Step()

	if c.calls != DefaultSubTicks {
		t.Errorf("expected %d sub-ticks, got %d", DefaultSubTicks, c.calls)
	}
	if math.Abs(c.dt-a.Timing().SubTickDt()) > 1e-12 {
		t.Errorf("expected dt %f, got %f", a.Timing().SubTickDt(), c.dt)
	}
}

func TestOverrideTimings(t *testing.T) {
	a := New()

	if err := a.OverrideTimings(0.01, 2); err != nil {
		t.Fatalf("override before registration failed: %v", err)
	}
	if a.Timing().SubTicks != 2 {
		t.Errorf("expected 2 sub-ticks, got %d", a.Timing().SubTicks)
	}

	if err := a.OverrideTimings(0.01, 0); err == nil {
		t.Error("expected error for zero sub-ticks")
	}
	if err := a.OverrideTimings(-1, 2); err == nil {
		t.Error("expected error for negative period")
	}
}

func TestOverrideTimingsRejectedAfterRegistration(t *testing.T) {
	a := New()
	a.Register(&countingSteppable{})

	if err := a.OverrideTimings(0.01, 2); err == nil {
		t.Error("expected timings to be frozen after registration")
	}
}
