package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// clampFloat clamps v between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

// normalizeAngle wraps an angle to (-Pi, Pi].
func normalizeAngle(angle float64) float64 {
	a := math.Mod(angle+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// bearing returns the heading pointing from one point to another.
func bearing(from, to r2.Vec) float64 {
	d := r2.Sub(to, from)
	return math.Atan2(d.Y, d.X)
}

// distance returns the Euclidean distance between two points.
func distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// headingVec returns the unit vector for a heading.
func headingVec(heading float64) r2.Vec {
	return r2.Vec{X: math.Cos(heading), Y: math.Sin(heading)}
}
