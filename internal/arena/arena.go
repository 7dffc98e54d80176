// Package arena owns the simulation world and its timing.
//
// A simulation tick (one control period) decomposes into a fixed number of
// physics sub-ticks. Everything registered with the arena is stepped once per
// sub-tick, then the rigid-body world integrates. Timing is process
// configuration: it must be set before any consumer is constructed, because
// encoder caches are sized from the sub-tick count. Attempts to change it
// afterwards are rejected.
package arena

import (
	"fmt"

	"github.com/ByteArena/box2d"
)

const (
	// DefaultPeriod is the control-loop period in seconds (50 Hz).
	DefaultPeriod = 0.02
	// DefaultSubTicks is the number of physics sub-ticks per period.
	DefaultSubTicks = 5

	velocityIterations = 6
	positionIterations = 2
)

// Timing is the fixed-timestep configuration of a simulation.
type Timing struct {
	Period   float64
	SubTicks int
}

// SubTickDt returns the duration of one physics sub-tick in seconds.
func (t Timing) SubTickDt() float64 {
	return t.Period / float64(t.SubTicks)
}

// Steppable is anything advanced once per physics sub-tick, before the world
// integrates. Sub-ticks run to completion synchronously; implementations must
// not block.
type Steppable interface {
	SimulationSubTick(dt float64)
}

// Arena is a top-down, zero-gravity rigid-body world plus the simulation
// clock. Not safe for concurrent use; the whole pipeline is single-threaded.
type Arena struct {
	world      box2d.B2World
	timing     Timing
	steppables []Steppable
	locked     bool
}

// New creates an arena with default timings.
func New() *Arena {
	return &Arena{
		world:  box2d.MakeB2World(box2d.MakeB2Vec2(0, 0)),
		timing: Timing{Period: DefaultPeriod, SubTicks: DefaultSubTicks},
	}
}

// OverrideTimings replaces the simulation timings. It fails once any
// steppable has been registered, since encoder caches are already sized.
func (a *Arena) OverrideTimings(period float64, subTicks int) error {
	if a.locked {
		return fmt.Errorf("arena: timings are fixed once a simulation is registered")
	}
	if period <= 0 {
		return fmt.Errorf("arena: period must be positive, got %f", period)
	}
	if subTicks < 1 {
		return fmt.Errorf("arena: sub-tick count must be at least 1, got %d", subTicks)
	}
	a.timing = Timing{Period: period, SubTicks: subTicks}
	return nil
}

// Timing returns the current timing configuration.
func (a *Arena) Timing() Timing { return a.timing }

// World exposes the rigid-body world so simulations can create their bodies.
func (a *Arena) World() *box2d.B2World { return &a.world }

// Register adds a simulation to the sub-tick pipeline and freezes the
// timings.
func (a *Arena) Register(s Steppable) {
	a.locked = true
	a.steppables = append(a.steppables, s)
}

// Step advances the simulation by one full control period: SubTicks rounds
// of every registered simulation's sub-tick followed by one rigid-body
// integration step.
func (a *Arena) Step() {
	dt := a.timing.SubTickDt()
	for i := 0; i < a.timing.SubTicks; i++ {
		for _, s := range a.steppables {
			s.SimulationSubTick(dt)
		}
		a.world.Step(dt, velocityIterations, positionIterations)
	}
}
