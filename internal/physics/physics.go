// Package physics provides collision detection and steering vector utilities.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Normalize returns v scaled to unit length.
// The zero vector (or anything too small to scale) stays zero instead of turning into NaN.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Within reports whether a and b are strictly closer than radius.
func Within(a, b mgl64.Vec3, radius float64) bool {
	return DistanceSquared(a, b) < radius*radius
}

// PlanarLength returns the length of v projected onto the XY plane.
func PlanarLength(v mgl64.Vec3) float64 {
	return math.Hypot(v.X(), v.Y())
}

// Separation returns the push that moves positions[self] away from every other
// position closer than threshold. Each neighbour contributes
// normalize(self - other) * (threshold - dist) * strength.
func Separation(self int, positions []mgl64.Vec3, threshold, strength float64) mgl64.Vec3 {
	var push mgl64.Vec3
	p := positions[self]
	for j, other := range positions {
		if j == self {
			continue
		}
		dist := Distance(p, other)
		if dist < threshold {
			push = push.Add(Normalize(p.Sub(other)).Mul((threshold - dist) * strength))
		}
	}
	return push
}
