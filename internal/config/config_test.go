package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "straight" {
		t.Errorf("expected scenario straight, got %s", cfg.Scenario)
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Robot.Mass <= 0 {
		t.Error("mass should be positive")
	}
}

func TestDrivetrainConfigValid(t *testing.T) {
	cfg := DefaultConfig()

	dc := cfg.DrivetrainConfig()
	if err := dc.Validate(); err != nil {
		t.Fatalf("default drivetrain config invalid: %v", err)
	}
	if len(dc.Modules) != 4 {
		t.Errorf("expected 4 modules, got %d", len(dc.Modules))
	}

	// Corner positions mirror across both axes.
	front := dc.Modules[0].Position
	back := dc.Modules[3].Position
	if front.X != -back.X || front.Y != -back.Y {
		t.Errorf("corners not mirrored: %v vs %v", front, back)
	}
}

func TestBuildScenario(t *testing.T) {
	cfg := DefaultConfig()

	for _, name := range []string{"straight", "spin", "skid"} {
		cfg.Scenario = name
		sc, err := cfg.BuildScenario()
		if err != nil {
			t.Errorf("scenario %s: %v", name, err)
			continue
		}
		if sc.Name() != name {
			t.Errorf("expected name %s, got %s", name, sc.Name())
		}
	}

	cfg.Scenario = "nonexistent"
	if _, err := cfg.BuildScenario(); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("skid", "violent")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Speed != 4.0 {
		t.Errorf("expected speed 4.0, got %f", cfg.Speed)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("skid", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "violent"); cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("spin"); len(presets) == 0 {
		t.Error("expected presets for spin")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := t.TempDir() + "/run.yaml"

	cfg := DefaultConfig()
	cfg.Scenario = "spin"
	cfg.Omega = 3.5
	cfg.Robot.Mass = 75.0

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Scenario != "spin" || loaded.Omega != 3.5 || loaded.Robot.Mass != 75.0 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	// Untouched fields keep their defaults.
	if loaded.Robot.WheelRadius != DefaultWheelRadius {
		t.Errorf("expected default wheel radius, got %f", loaded.Robot.WheelRadius)
	}
}
