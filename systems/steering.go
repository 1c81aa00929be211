package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
)

// Bounds is the rectangle agents are kept inside after bouncing.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// BoundsFromConfig returns the swimmable area of the tank.
func BoundsFromConfig(cfg *config.Config) Bounds {
	return Bounds{
		MinX: cfg.Derived.MinX,
		MaxX: cfg.Derived.MaxX,
		MinY: cfg.Derived.MinY,
		MaxY: cfg.Derived.MaxY,
	}
}

// Contains reports whether p lies inside the bounds, edges included.
func (b Bounds) Contains(p r2.Vec) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// turnToward moves heading a fraction of the way toward the target heading,
// taking the short way round.
func turnToward(heading, target, rate float64) float64 {
	return normalizeAngle(heading + normalizeAngle(target-heading)*rate)
}

// advance moves pos along heading by speed.
func advance(pos *components.Position, heading, speed float64) {
	step := r2.Scale(speed, headingVec(heading))
	pos.X += step.X
	pos.Y += step.Y
}

// bounce clamps pos into b and, if it was outside, points the heading back
// into the tank within spread radians of the inward normal. At a corner the
// normal is the diagonal. Reports whether a correction happened.
func bounce(pos *components.Position, rot *components.Rotation, b Bounds, spread float64, rng RNG) bool {
	var normal r2.Vec
	switch {
	case pos.X < b.MinX:
		pos.X = b.MinX
		normal.X = 1
	case pos.X > b.MaxX:
		pos.X = b.MaxX
		normal.X = -1
	}
	switch {
	case pos.Y < b.MinY:
		pos.Y = b.MinY
		normal.Y = 1
	case pos.Y > b.MaxY:
		pos.Y = b.MaxY
		normal.Y = -1
	}
	if normal == (r2.Vec{}) {
		return false
	}
	rot.Heading = normalizeAngle(math.Atan2(normal.Y, normal.X) + jitter(rng, spread))
	return true
}
