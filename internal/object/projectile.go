package object

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/scene"
)

// Player bullet tuning.
const (
	ShipBulletSpeed = 0.6
	ShipBulletSize  = 0.15
)

// Hunter bullet tuning.
const (
	HunterBulletSpeed = 1.0
	HunterBulletSize  = 0.1
)

// Shared bullet meshes; nodes only reference them.
var (
	shipBulletMesh   = scene.Sphere(ShipBulletSize, 6, 4)
	hunterBulletMesh = scene.Sphere(HunterBulletSize, 6, 4)
)

// Bullet travels in a straight line at constant speed.
type Bullet struct {
	Body
	Dir   mgl64.Vec3
	Speed float64
}

// NewShipBullet fires a bullet from the ship straight down -Z.
func NewShipBullet(pos mgl64.Vec3) *Bullet {
	n := scene.NewNode(shipBulletMesh, draw.Hex("#00ff00"))
	n.Position = pos
	return &Bullet{Body: Body{Node: n}, Dir: mgl64.Vec3{0, 0, -1}, Speed: ShipBulletSpeed}
}

// NewHunterBullet fires a bullet from a drone or enemy ship along dir.
func NewHunterBullet(pos, dir mgl64.Vec3) *Bullet {
	n := scene.NewNode(hunterBulletMesh, draw.Hex("#ff0000"))
	n.Position = pos
	return &Bullet{Body: Body{Node: n}, Dir: dir, Speed: HunterBulletSpeed}
}

// Advance moves the bullet one frame.
func (b *Bullet) Advance() {
	b.Move(b.Dir.Mul(b.Speed))
}
