package drivetrain

import (
	"math"
	"math/rand"

	"github.com/robosim-dev/swervesim/internal/geom"
)

// Gyro simulates the chassis heading sensor. It integrates the body's true
// angular velocity with a configurable random-walk drift, and keeps a
// per-sub-tick cache of headings mirroring the module encoder caches so a
// pose estimator can consume heading samples at the same rate.
type Gyro struct {
	heading  float64
	velocity float64
	driftStd float64

	cache     []float64
	cacheHead int
}

// NewGyro creates a heading sensor with the given random-walk drift standard
// deviation (rad/sqrt(s)) and cache depth (sub-ticks per control period).
func NewGyro(driftStd float64, cacheDepth int) *Gyro {
	return &Gyro{
		driftStd: driftStd,
		cache:    make([]float64, cacheDepth),
	}
}

// Update advances the sensor by one sub-tick given the body's true angular
// velocity.
func (g *Gyro) Update(actualAngularVelocity, dt float64) {
	g.velocity = actualAngularVelocity
	g.heading += actualAngularVelocity * dt
	if g.driftStd > 0 {
		g.heading += rand.NormFloat64() * g.driftStd * math.Sqrt(dt)
	}

	g.cache[g.cacheHead] = g.heading
	g.cacheHead = (g.cacheHead + 1) % len(g.cache)
}

// Heading returns the integrated (drifting) heading reading.
func (g *Gyro) Heading() geom.Rotation2 {
	return geom.NewRotation2(g.heading)
}

// AngularVelocity returns the sensor's rate reading in rad/s.
func (g *Gyro) AngularVelocity() float64 { return g.velocity }

// CachedHeadings returns the per-sub-tick heading samples from the last
// control period, oldest first, as a snapshot.
func (g *Gyro) CachedHeadings() []geom.Rotation2 {
	out := make([]geom.Rotation2, len(g.cache))
	for i := range g.cache {
		out[i] = geom.NewRotation2(g.cache[(g.cacheHead+i)%len(g.cache)])
	}
	return out
}

// SetHeading resets the sensor reading, typically after a world-pose reset.
func (g *Gyro) SetHeading(heading geom.Rotation2) {
	g.heading = heading.Radians()
	for i := range g.cache {
		g.cache[i] = g.heading
	}
}
