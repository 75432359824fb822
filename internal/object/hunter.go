package object

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/scene"
)

// HunterKind tells drones and enemy ships apart.
type HunterKind int

const (
	KindDrone HunterKind = iota
	KindEnemyShip
)

func (k HunterKind) String() string {
	if k == KindEnemyShip {
		return "enemy_ship"
	}
	return "drone"
}

// Hunter seeks the ship and shoots at it when its cooldown runs out.
type Hunter struct {
	Body
	Kind     HunterKind
	Cooldown float64    // frames until the next shot
	Shell    *scene.Node // rotating shell, full-tier drones only
}

// NewDrone builds a drone somewhere ahead of the ship.
func NewDrone(tier Tier, rng *rand.Rand) *Hunter {
	var n, shell *scene.Node
	if tier == TierFull {
		core := scene.NewNode(scene.Sphere(0.35, 8, 6), draw.Hex("#ffff5b"))
		shell = scene.NewNode(scene.Box(1, 1, 1), draw.Hex("#ad900c"))
		n = scene.NewGroup(core, shell)
	} else {
		n = scene.NewNode(scene.Box(1, 1, 1), draw.Hex("#ffff00"))
	}
	n.Position = mgl64.Vec3{
		between(rng, -25, 40),
		between(rng, -25, 40),
		between(rng, -200, 150),
	}
	return &Hunter{
		Body:     Body{Node: n},
		Kind:     KindDrone,
		Cooldown: rng.Float64() * 150,
		Shell:    shell,
	}
}

// NewEnemyShip builds an enemy ship on the far spawn plane.
func NewEnemyShip(tier Tier, rng *rand.Rand) *Hunter {
	var n *scene.Node
	if tier == TierFull {
		n = fullEnemyShip()
	} else {
		n = scene.NewNode(scene.Cone(0.8, 2, 8), draw.Hex("#ffa500"))
		n.Rotation = mgl64.Vec3{math.Pi / 2, 0, 0}
	}
	n.Position = mgl64.Vec3{
		between(rng, -10, 20),
		between(rng, -10, 20),
		RecycleZ,
	}
	return &Hunter{
		Body:     Body{Node: n},
		Kind:     KindEnemyShip,
		Cooldown: rng.Float64() * 20,
	}
}

func fullEnemyShip() *scene.Node {
	body := scene.NewNode(scene.Cone(0.8, 2.2, 3), draw.Hex("#ff6600"))
	body.Rotation = mgl64.Vec3{math.Pi / 2, 0, 0}

	cockpit := scene.NewNode(scene.Sphere(0.3, 8, 6), draw.Hex("#ff8800"))
	cockpit.Position = mgl64.Vec3{0, 0.25, 0}

	ring := scene.NewNode(scene.Torus(0.45, 0.12, 6, 12), draw.Hex("#ff5500"))
	ring.Position = mgl64.Vec3{0, 0, -2.5}

	g := scene.NewGroup(body, cockpit, ring)
	for _, side := range []float64{-1, 1} {
		fin := scene.NewNode(scene.Box(0.15, 1.2, 0.25), draw.Hex("#ff0000"))
		fin.Position = mgl64.Vec3{0.7 * side, 0.7, -0.3}
		fin.Rotation = mgl64.Vec3{0, 0, -0.5 * side}

		horn := scene.NewNode(scene.Cylinder(0.05, 0.12, 1.0, 6), draw.Hex("#ff3300"))
		horn.Position = mgl64.Vec3{0.6 * side, -0.2, -0.5}
		horn.Rotation = mgl64.Vec3{0, 0, math.Pi + side*math.Pi/2}

		g.Add(fin, horn)
	}
	return g
}

// SpinShell turns the drone shell a little on x and y.
func (h *Hunter) SpinShell() {
	if h.Shell == nil {
		return
	}
	h.Shell.Rotation[0] += 0.01
	h.Shell.Rotation[1] += 0.01
}
