package motor

import (
	"errors"
	"math"
	"testing"
)

func TestBatteryValidate(t *testing.T) {
	if _, err := NewBattery(0, 0.02); !errors.Is(err, ErrInvalidBattery) {
		t.Errorf("expected ErrInvalidBattery for zero nominal voltage, got %v", err)
	}
	if _, err := NewBattery(12, -0.1); !errors.Is(err, ErrInvalidBattery) {
		t.Errorf("expected ErrInvalidBattery for negative resistance, got %v", err)
	}
}

func TestBatterySag(t *testing.T) {
	battery, err := NewBattery(12.0, 0.02)
	if err != nil {
		t.Fatal(err)
	}

	if v := battery.Voltage(); v != 12.0 {
		t.Errorf("unloaded rail should be nominal, got %f", v)
	}

	battery.AddAppliance(func() float64 { return 100.0 })

	if v := battery.Voltage(); math.Abs(v-10.0) > 1e-12 {
		t.Errorf("expected 10V under 100A load, got %f", v)
	}
}

func TestBatteryBrownoutFloor(t *testing.T) {
	battery, err := NewBattery(12.0, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	battery.AddAppliance(func() float64 { return 1e6 })

	if v := battery.Voltage(); v != 6.0 {
		t.Errorf("rail should floor at brownout voltage 6.0, got %f", v)
	}
}

func TestBatteryClamp(t *testing.T) {
	battery, err := NewBattery(12.0, 0.02)
	if err != nil {
		t.Fatal(err)
	}

	if got := battery.Clamp(16.0); got != 12.0 {
		t.Errorf("expected clamp to +12, got %f", got)
	}
	if got := battery.Clamp(-16.0); got != -12.0 {
		t.Errorf("expected clamp to -12, got %f", got)
	}
	if got := battery.Clamp(7.5); got != 7.5 {
		t.Errorf("in-range request should pass through, got %f", got)
	}
}

func TestRegenerativeCurrentIgnored(t *testing.T) {
	battery, err := NewBattery(12.0, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	battery.AddAppliance(func() float64 { return -50.0 })

	if v := battery.Voltage(); v != 12.0 {
		t.Errorf("negative draw must not raise the rail, got %f", v)
	}
}
