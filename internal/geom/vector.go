package geom

import "math"

// Vector2 is a planar vector in meters (or newtons, or meters per second,
// depending on context). All drivetrain math works in SI units.
type Vector2 struct {
	X float64
	Y float64
}

// FromPolar creates a vector with the given magnitude and bearing.
func FromPolar(magnitude, bearing float64) Vector2 {
	return Vector2{
		X: magnitude * math.Cos(bearing),
		Y: magnitude * math.Sin(bearing),
	}
}

func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vector2) Scale(factor float64) Vector2 {
	return Vector2{X: v.X * factor, Y: v.Y * factor}
}

func (v Vector2) Dot(other Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Norm returns the magnitude of the vector.
func (v Vector2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Bearing returns the direction of the vector in radians. The bearing of
// the zero vector is defined to be 0, never NaN.
func (v Vector2) Bearing() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return math.Atan2(v.Y, v.X)
}

// Rotate rotates the vector by angle radians counter-clockwise.
func (v Vector2) Rotate(angle float64) Vector2 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// RotateBy rotates the vector by a Rotation2.
func (v Vector2) RotateBy(r Rotation2) Vector2 {
	return Vector2{
		X: v.X*r.Cos() - v.Y*r.Sin(),
		Y: v.X*r.Sin() + v.Y*r.Cos(),
	}
}

// WithMagnitude returns a vector with the same direction but the given
// magnitude. The direction of the zero vector is the +X axis.
func (v Vector2) WithMagnitude(magnitude float64) Vector2 {
	return FromPolar(magnitude, v.Bearing())
}
