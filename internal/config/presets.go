package config

func presetWith(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"straight": {
		"cruise": presetWith(func(c *Config) {
			c.Scenario = "straight"
			c.Speed = 2.0
		}),
		"sprint": presetWith(func(c *Config) {
			c.Scenario = "straight"
			c.Speed = 4.5
			c.Duration = 5.0
		}),
	},
	"spin": {
		"slow": presetWith(func(c *Config) {
			c.Scenario = "spin"
			c.Omega = 1.0
		}),
		"fast": presetWith(func(c *Config) {
			c.Scenario = "spin"
			c.Omega = 4.0
		}),
	},
	"skid": {
		"gentle": presetWith(func(c *Config) {
			c.Scenario = "skid"
			c.Speed = 2.0
			c.Interval = 1.0
		}),
		"violent": presetWith(func(c *Config) {
			c.Scenario = "skid"
			c.Speed = 4.0
			c.Interval = 0.4
		}),
		"heavyweight": presetWith(func(c *Config) {
			c.Scenario = "skid"
			c.Speed = 4.0
			c.Interval = 0.5
			c.Robot.Mass = 110.0
		}),
	},
}

func GetPreset(scenarioName, preset string) *Config {
	scenarioPresets, ok := Presets[scenarioName]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenarioName string) []string {
	scenarioPresets, ok := Presets[scenarioName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
