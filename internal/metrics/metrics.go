// Package metrics provides scalar summaries accumulated over a scenario
// run. Each type implements [scenario.Metric].
package metrics

import (
	"math"

	"github.com/robosim-dev/swervesim/internal/scenario"
)

// PeakSpeed tracks the highest translational chassis speed reached.
type PeakSpeed struct {
	peak float64
}

func (m *PeakSpeed) Name() string { return "peak_speed" }

func (m *PeakSpeed) Observe(s scenario.Sample) {
	speed := s.Actual.Translation().Norm()
	if speed > m.peak {
		m.peak = speed
	}
}

func (m *PeakSpeed) Value() float64 { return m.peak }
func (m *PeakSpeed) Reset()         { m.peak = 0 }

// SlipFraction is the fraction of control periods in which at least one
// module exceeded its grip limit.
type SlipFraction struct {
	slipping int
	total    int
}

func (m *SlipFraction) Name() string { return "slip_fraction" }

func (m *SlipFraction) Observe(s scenario.Sample) {
	m.total++
	if s.Slipping > 0 {
		m.slipping++
	}
}

func (m *SlipFraction) Value() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.slipping) / float64(m.total)
}

func (m *SlipFraction) Reset() {
	m.slipping = 0
	m.total = 0
}

// Distance integrates the path length traveled by the chassis center.
type Distance struct {
	last     scenario.Sample
	hasLast  bool
	distance float64
}

func (m *Distance) Name() string { return "distance" }

func (m *Distance) Observe(s scenario.Sample) {
	if m.hasLast {
		m.distance += s.Pose.Position.Sub(m.last.Pose.Position).Norm()
	}
	m.last = s
	m.hasLast = true
}

func (m *Distance) Value() float64 { return m.distance }

func (m *Distance) Reset() {
	m.distance = 0
	m.hasLast = false
}

// ControlEffort integrates mean absolute drive voltage over time, a proxy
// for energy spent.
type ControlEffort struct {
	effort float64
	last   float64
	has    bool
}

func (m *ControlEffort) Name() string { return "control_effort" }

func (m *ControlEffort) Observe(s scenario.Sample) {
	if m.has {
		dt := s.Time - m.last
		m.effort += math.Abs(s.DriveVolts) * dt
	}
	m.last = s.Time
	m.has = true
}

func (m *ControlEffort) Value() float64 { return m.effort }

func (m *ControlEffort) Reset() {
	m.effort = 0
	m.has = false
}
