package object

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/scene"
)

// Laser geometry: a thin beam reaching from the UFO back past the ship.
const (
	LaserLength = 300.0
	LaserOffset = LaserLength / 2
)

// UFO hovers on the far plane, drifts laterally after the ship and fires
// a permanent laser beam along the Z axis.
type UFO struct {
	Body
	Cooldown float64
	Wander   [2]float64 // phase accumulators for the wander offset
	Laser    *scene.Node
}

// NewUFO builds a UFO together with its laser.
func NewUFO(tier Tier, rng *rand.Rand) *UFO {
	n := scene.NewNode(scene.Cylinder(0.5, 1, 0.3, 16), draw.Hex("#ff0000"))
	n.Position = mgl64.Vec3{
		between(rng, -15, 30),
		between(rng, -15, 30),
		-250,
	}

	laser := scene.NewNode(scene.Cylinder(0.1, 0.1, LaserLength, 6), draw.Hex("#ff0000"))
	laser.Rotation = mgl64.Vec3{math.Pi / 2, 0, 0}

	u := &UFO{
		Body:     Body{Node: n},
		Cooldown: 5,
		Wander:   [2]float64{rng.Float64() * 1000, rng.Float64() * 1000},
		Laser:    laser,
	}
	u.AlignLaser()
	return u
}

// AlignLaser keeps the beam attached to the UFO.
func (u *UFO) AlignLaser() {
	u.Laser.Position = u.Position().Add(mgl64.Vec3{0, 0, LaserOffset})
}
