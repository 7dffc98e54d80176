package scenario

import (
	"context"
	"math"

	"github.com/robosim-dev/swervesim/internal/arena"
	"github.com/robosim-dev/swervesim/internal/drivetrain"
	"github.com/robosim-dev/swervesim/internal/kinematics"
)

// Sample is one control period's worth of recorded drivetrain state.
type Sample struct {
	Time     float64
	Pose     drivetrain.Pose
	Actual   kinematics.ChassisSpeeds
	Desired  kinematics.ChassisSpeeds
	Slipping int // modules over their grip limit this period
	// DriveVolts is the mean absolute applied drive voltage across
	// modules.
	DriveVolts float64
}

// Metric accumulates a scalar over a run. Implementations live in the
// metrics package.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Result is a completed scenario run.
type Result struct {
	Scenario string
	Samples  []Sample
	Metrics  map[string]float64
}

// Run drives the drivetrain through the scenario for the given duration,
// recording one sample per control period. The context cancels a run early;
// a tick never stops mid-way.
func Run(ctx context.Context, a *arena.Arena, d *drivetrain.Drivetrain, sc Scenario, duration float64, metrics ...Metric) (*Result, error) {
	ctrl := NewDriveController(d, 12.0)
	period := a.Timing().Period
	ticks := int(math.Round(duration / period))

	for _, m := range metrics {
		m.Reset()
	}

	result := &Result{
		Scenario: sc.Name(),
		Samples:  make([]Sample, 0, ticks),
		Metrics:  make(map[string]float64),
	}

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i) * period
		ctrl.Drive(d, sc.Speeds(t), period)
		a.Step()

		sample := Sample{
			Time:    t + period,
			Pose:    d.Pose(),
			Actual:  d.ChassisSpeedsRobotRelative(),
			Desired: d.DesiredSpeeds(),
		}
		for _, m := range d.Modules() {
			if m.Slipping() {
				sample.Slipping++
			}
			sample.DriveVolts += math.Abs(m.DriveAppliedVoltage())
		}
		sample.DriveVolts /= float64(len(d.Modules()))

		for _, m := range metrics {
			m.Observe(sample)
		}
		result.Samples = append(result.Samples, sample)
	}

	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
