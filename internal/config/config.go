package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robosim-dev/swervesim/internal/drivetrain"
	"github.com/robosim-dev/swervesim/internal/geom"
	"github.com/robosim-dev/swervesim/internal/module"
	"github.com/robosim-dev/swervesim/internal/motor"
	"github.com/robosim-dev/swervesim/internal/scenario"
)

const (
	DefaultMass        = 60.0
	DefaultTrackWidth  = 0.8
	DefaultWheelBase   = 0.8
	DefaultWheelRadius = 0.05
	DefaultWheelCoF    = 1.2
	DefaultNominalV    = 12.0
	DefaultBatteryR    = 0.02
	DefaultDuration    = 10.0
)

type Config struct {
	Scenario string  `yaml:"scenario"`
	Duration float64 `yaml:"duration"`
	Speed    float64 `yaml:"speed"`
	Omega    float64 `yaml:"omega"`
	Interval float64 `yaml:"interval"`

	Robot   RobotConfig   `yaml:"robot"`
	Battery BatteryConfig `yaml:"battery"`
}

type RobotConfig struct {
	Mass        float64     `yaml:"mass"`
	TrackWidth  float64     `yaml:"track_width"`
	WheelBase   float64     `yaml:"wheel_base"`
	WheelRadius float64     `yaml:"wheel_radius"`
	WheelCoF    float64     `yaml:"wheel_cof"`
	GyroDrift   float64     `yaml:"gyro_drift"`
	DriveMotor  MotorConfig `yaml:"drive_motor"`
	SteerMotor  MotorConfig `yaml:"steer_motor"`
}

type MotorConfig struct {
	Resistance      float64 `yaml:"resistance"`
	Kv              float64 `yaml:"kv"`
	Kt              float64 `yaml:"kt"`
	GearRatio       float64 `yaml:"gear_ratio"`
	FrictionVoltage float64 `yaml:"friction_voltage"`
	Inertia         float64 `yaml:"inertia"`
}

type BatteryConfig struct {
	NominalVoltage float64 `yaml:"nominal_voltage"`
	Resistance     float64 `yaml:"resistance"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: "straight",
		Duration: DefaultDuration,
		Speed:    3.0,
		Omega:    2.0,
		Interval: 0.5,
		Robot: RobotConfig{
			Mass:        DefaultMass,
			TrackWidth:  DefaultTrackWidth,
			WheelBase:   DefaultWheelBase,
			WheelRadius: DefaultWheelRadius,
			WheelCoF:    DefaultWheelCoF,
			DriveMotor: MotorConfig{
				Resistance:      0.025,
				Kv:              50.0,
				Kt:              0.019,
				GearRatio:       6.75,
				FrictionVoltage: 0.25,
			},
			SteerMotor: MotorConfig{
				Resistance:      0.04,
				Kv:              55.0,
				Kt:              0.015,
				GearRatio:       21.4,
				FrictionVoltage: 0.2,
				Inertia:         0.04,
			},
		},
		Battery: BatteryConfig{
			NominalVoltage: DefaultNominalV,
			Resistance:     DefaultBatteryR,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (m MotorConfig) spec() motor.Spec {
	return motor.Spec{
		Resistance:      m.Resistance,
		Kv:              m.Kv,
		Kt:              m.Kt,
		GearRatio:       m.GearRatio,
		FrictionVoltage: m.FrictionVoltage,
		Inertia:         m.Inertia,
	}
}

// DrivetrainConfig assembles the four corner modules from the robot
// dimensions and motor specs.
func (c *Config) DrivetrainConfig() drivetrain.Config {
	halfW := c.Robot.TrackWidth / 2
	halfL := c.Robot.WheelBase / 2
	positions := []geom.Vector2{
		{X: halfL, Y: halfW},
		{X: halfL, Y: -halfW},
		{X: -halfL, Y: halfW},
		{X: -halfL, Y: -halfW},
	}

	modules := make([]module.Config, len(positions))
	for i, pos := range positions {
		modules[i] = module.Config{
			WheelRadius: c.Robot.WheelRadius,
			DriveMotor:  c.Robot.DriveMotor.spec(),
			SteerMotor:  c.Robot.SteerMotor.spec(),
			WheelCoF:    c.Robot.WheelCoF,
			Position:    pos,
		}
	}

	return drivetrain.Config{
		Mass:      c.Robot.Mass,
		Width:     c.Robot.TrackWidth,
		Length:    c.Robot.WheelBase,
		Modules:   modules,
		GyroDrift: c.Robot.GyroDrift,
	}
}

// NewBattery builds the shared battery from the config.
func (c *Config) NewBattery() (*motor.Battery, error) {
	return motor.NewBattery(c.Battery.NominalVoltage, c.Battery.Resistance)
}

// BuildScenario resolves the named scenario with its parameters.
func (c *Config) BuildScenario() (scenario.Scenario, error) {
	switch c.Scenario {
	case "straight":
		return scenario.Straight{Speed: c.Speed}, nil
	case "spin":
		return scenario.Spin{Omega: c.Omega}, nil
	case "skid":
		return scenario.Skid{Speed: c.Speed, Interval: c.Interval}, nil
	default:
		return nil, fmt.Errorf("unknown scenario %q", c.Scenario)
	}
}
