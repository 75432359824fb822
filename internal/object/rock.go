package object

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/scene"
)

// RockShape sets the size and speed ranges rocks are drawn from.
type RockShape struct {
	MinRadius  float64
	RadiusSpan float64
	MinSpeed   float64
	SpeedSpan  float64
}

// rockJitter is the full width of the per-axis vertex displacement on full-tier rocks.
const rockJitter = 0.3

var rockGreys = []string{"#aaaaaa", "#999999", "#777777", "#555555", "#333333"}

// Rock drifts towards the camera and hurts the ship on contact.
// Rocks are recycled, never destroyed.
type Rock struct {
	Body
	Radius float64
	Speed  float64
}

// NewRock builds a rock somewhere in the corridor ahead of the ship.
func NewRock(tier Tier, shape RockShape, rng *rand.Rand) *Rock {
	radius := between(rng, shape.MinRadius, shape.RadiusSpan)

	var n *scene.Node
	if tier == TierFull {
		segments := 6 + rng.Intn(5)
		mesh := scene.Jitter(scene.Sphere(radius, segments, segments), rockJitter, rng)
		paint := draw.Hex(rockGreys[rng.Intn(len(rockGreys))])
		paint.Alpha = 0.75
		n = scene.NewNode(mesh, paint)
	} else {
		n = scene.NewNode(scene.Sphere(radius, 8, 8), draw.Hex("#808080"))
	}
	n.Position = mgl64.Vec3{
		between(rng, -RecycleRange, 2*RecycleRange),
		between(rng, -RecycleRange, 2*RecycleRange),
		between(rng, -250, 225),
	}

	return &Rock{
		Body:   Body{Node: n},
		Radius: radius,
		Speed:  between(rng, shape.MinSpeed, shape.SpeedSpan),
	}
}

// Advance moves the rock one frame towards the camera.
func (r *Rock) Advance() {
	r.Node.Position[2] += r.Speed
}
