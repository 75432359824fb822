// Package object builds the game entities: the player's ship, rocks, drones,
// enemy ships, UFOs, bullets, fragments and the scenery around them.
// Each entity owns a scene node; its position is the node's position.
package object

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/scene"
)

// Tier selects how entities are modelled.
type Tier int

const (
	TierPrototype Tier = iota // Flat wireframe primitives
	TierFull                  // Multi-part models, rotating shells, backdrop
)

// Recycle area: entities that are hit or left behind reappear here.
const (
	RecycleRange = 25.0
	RecycleZ     = -200.0
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Renderer *scene.Renderer
}

// Object is a short-lived entity that updates and draws itself.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object through the renderer.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Body is the part every scene entity shares: the node that is drawn and moved.
type Body struct {
	Node *scene.Node
}

// Position returns the entity position.
func (b *Body) Position() mgl64.Vec3 {
	return b.Node.Position
}

// SetPosition moves the entity to p.
func (b *Body) SetPosition(p mgl64.Vec3) {
	b.Node.Position = p
}

// Move offsets the entity by d.
func (b *Body) Move(d mgl64.Vec3) {
	b.Node.Position = b.Node.Position.Add(d)
}

// Recycle sends the entity back to the spawn plane.
func (b *Body) Recycle(rng *rand.Rand) {
	b.Node.Position = RecyclePosition(rng)
}

// RecyclePosition returns a point with x, y in [-25, 25) at z = -200.
func RecyclePosition(rng *rand.Rand) mgl64.Vec3 {
	return mgl64.Vec3{
		rng.Float64()*2*RecycleRange - RecycleRange,
		rng.Float64()*2*RecycleRange - RecycleRange,
		RecycleZ,
	}
}

// between returns a uniform value in [lo, lo+span).
func between(rng *rand.Rand, lo, span float64) float64 {
	return lo + rng.Float64()*span
}
