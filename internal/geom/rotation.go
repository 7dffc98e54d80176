package geom

import "math"

// Rotation2 is a heading on the plane, stored in radians. The value is not
// wrapped on construction; Wrapped() normalizes into (-pi, pi] when a
// bounded representation is needed (absolute encoder readings, angle
// differences).
type Rotation2 struct {
	radians float64
}

func NewRotation2(radians float64) Rotation2 {
	return Rotation2{radians: radians}
}

func RotationFromDegrees(degrees float64) Rotation2 {
	return Rotation2{radians: degrees * math.Pi / 180}
}

func (r Rotation2) Radians() float64 { return r.radians }

func (r Rotation2) Degrees() float64 { return r.radians * 180 / math.Pi }

func (r Rotation2) Cos() float64 { return math.Cos(r.radians) }

func (r Rotation2) Sin() float64 { return math.Sin(r.radians) }

func (r Rotation2) Plus(other Rotation2) Rotation2 {
	return Rotation2{radians: r.radians + other.radians}
}

func (r Rotation2) Minus(other Rotation2) Rotation2 {
	return Rotation2{radians: r.radians - other.radians}
}

// Wrapped normalizes the angle into (-pi, pi].
func (r Rotation2) Wrapped() Rotation2 {
	return Rotation2{radians: WrapAngle(r.radians)}
}

// Unit returns the unit vector pointing along this rotation.
func (r Rotation2) Unit() Vector2 {
	return Vector2{X: r.Cos(), Y: r.Sin()}
}

// WrapAngle normalizes an angle in radians into (-pi, pi].
func WrapAngle(radians float64) float64 {
	wrapped := math.Mod(radians, 2*math.Pi)
	if wrapped > math.Pi {
		wrapped -= 2 * math.Pi
	} else if wrapped <= -math.Pi {
		wrapped += 2 * math.Pi
	}
	return wrapped
}

// AngleDifference returns the smallest signed angle from b to a.
func AngleDifference(a, b float64) float64 {
	return WrapAngle(a - b)
}
