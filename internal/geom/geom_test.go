package geom

import (
	"math"
	"testing"
)

func TestVectorRotate(t *testing.T) {
	v := Vector2{X: 1, Y: 0}
	rotated := v.Rotate(math.Pi / 2)

	if math.Abs(rotated.X) > 1e-12 {
		t.Errorf("expected x near 0, got %f", rotated.X)
	}
	if math.Abs(rotated.Y-1) > 1e-12 {
		t.Errorf("expected y near 1, got %f", rotated.Y)
	}
}

func TestZeroVectorBearing(t *testing.T) {
	v := Vector2{}

	if b := v.Bearing(); b != 0 {
		t.Errorf("zero vector bearing must be 0, got %f", b)
	}
	if math.IsNaN(v.WithMagnitude(5).X) {
		t.Error("WithMagnitude on zero vector produced NaN")
	}
}

func TestFromPolarRoundTrip(t *testing.T) {
	v := FromPolar(3.5, 1.2)

	if math.Abs(v.Norm()-3.5) > 1e-12 {
		t.Errorf("expected norm 3.5, got %f", v.Norm())
	}
	if math.Abs(v.Bearing()-1.2) > 1e-12 {
		t.Errorf("expected bearing 1.2, got %f", v.Bearing())
	}
}

func TestWrapAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-math.Pi / 4, -math.Pi / 4},
	}

	for _, c := range cases {
		got := WrapAngle(c.in)
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("WrapAngle(%f): expected %f, got %f", c.in, c.want, got)
		}
	}
}

func TestAngleDifferenceShortestPath(t *testing.T) {
	got := AngleDifference(-3*math.Pi/4, 3*math.Pi/4)
	want := math.Pi / 2

	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestRotationPlusMinus(t *testing.T) {
	a := NewRotation2(1.0)
	b := NewRotation2(0.25)

	if got := a.Plus(b).Radians(); math.Abs(got-1.25) > 1e-12 {
		t.Errorf("expected 1.25, got %f", got)
	}
	if got := a.Minus(b).Radians(); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %f", got)
	}
}
