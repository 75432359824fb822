package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/scene"
)

// ShipHitRadius is the distance below which melee contacts hit the ship.
const ShipHitRadius = 1.0

// ShipStart is where the ship is placed when a scene is built.
var ShipStart = mgl64.Vec3{0, -5, 0}

// Ship is the player's craft.
type Ship struct {
	Body
}

// NewShip builds the player's ship at ShipStart, facing -Z.
func NewShip(tier Tier) *Ship {
	var n *scene.Node
	if tier == TierFull {
		n = fullShip()
	} else {
		n = scene.NewNode(scene.Polyhedron(
			[]mgl64.Vec3{{0, 0, 1}, {-0.6, 0, -1}, {0.6, 0, -1}, {0, 0.4, -0.6}},
			[][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}},
		), draw.Hex("#90ee90"))
	}
	n.Rotation = mgl64.Vec3{0, math.Pi, 0}
	n.Position = ShipStart
	return &Ship{Body{Node: n}}
}

func fullShip() *scene.Node {
	blue := draw.Hex("#1e90ff")
	steel := draw.Hex("#666666")
	neon := draw.Hex("#00ffff")

	nose := scene.NewNode(scene.Cone(0.29, 0.8, 4), blue)
	nose.Rotation = mgl64.Vec3{math.Pi / 2, 0, 0}
	nose.Position = mgl64.Vec3{0, 0, 0.32}

	body := scene.NewNode(scene.Cylinder(0.2, 0.15, 1, 6), steel)
	body.Rotation = mgl64.Vec3{math.Pi / 2, 0, 0}
	body.Position = mgl64.Vec3{0, 0, -0.5}

	g := scene.NewGroup(nose, body)
	for _, side := range []float64{-1, 1} {
		wing := scene.NewNode(scene.Cone(0.18, 1, 3), steel)
		wing.Position = mgl64.Vec3{0.48 * side, 0, -0.7}
		wing.Rotation = mgl64.Vec3{-math.Pi / 2, 0, -side * math.Pi / 5}

		tail := scene.NewNode(scene.Box(0.05, 0.3, 0.5), blue)
		tail.Position = mgl64.Vec3{0.15 * side, 0, -1}
		tail.Rotation = mgl64.Vec3{0, 0, 0.3 * side}

		engine := scene.NewNode(scene.Cylinder(0.05, 0.05, 0.4, 6), neon)
		engine.Position = mgl64.Vec3{0.15 * side, 0, -1.1}
		engine.Rotation = mgl64.Vec3{math.Pi / 2, 0, 0}

		g.Add(wing, tail, engine)
	}
	g.Scale = mgl64.Vec3{1.2, 1.2, 1.2}
	return g
}
