package scenario

import (
	"math"

	"github.com/robosim-dev/swervesim/internal/kinematics"
)

// Scenario produces the commanded robot-relative chassis speeds over time.
type Scenario interface {
	Name() string
	Speeds(t float64) kinematics.ChassisSpeeds
}

// Straight drives forward at a constant speed.
type Straight struct {
	Speed float64
}

func (s Straight) Name() string { return "straight" }

func (s Straight) Speeds(t float64) kinematics.ChassisSpeeds {
	return kinematics.ChassisSpeeds{VX: s.Speed}
}

// Spin rotates in place at a constant angular velocity.
type Spin struct {
	Omega float64
}

func (s Spin) Name() string { return "spin" }

func (s Spin) Speeds(t float64) kinematics.ChassisSpeeds {
	return kinematics.ChassisSpeeds{Omega: s.Omega}
}

// Skid alternates full-speed forward and reverse commands every Interval
// seconds. The instant reversals demand more force than the tires can
// transmit, forcing the wheels to break traction.
type Skid struct {
	Speed    float64
	Interval float64
}

func (s Skid) Name() string { return "skid" }

func (s Skid) Speeds(t float64) kinematics.ChassisSpeeds {
	if math.Mod(t, 2*s.Interval) < s.Interval {
		return kinematics.ChassisSpeeds{VX: s.Speed}
	}
	return kinematics.ChassisSpeeds{VX: -s.Speed}
}
