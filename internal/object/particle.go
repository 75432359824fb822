package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/draw"
)

// fragmentPool is a sync.Pool for reusing Fragment objects to reduce allocations.
var fragmentPool = sync.Pool{
	New: func() any {
		return &Fragment{}
	},
}

// Fragment is a short-lived shard of rock thrown off when a rock hits the ship.
type Fragment struct {
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3 // units per second
	Lifetime    float64    // Seconds remaining
	MaxLifetime float64    // Initial lifetime (for fade calculation)
	Drag        float64    // Velocity decay per 1/60 s (1.0 = no drag)
	Paint       draw.Paint
}

// NewFragment creates a single fragment from the pool.
func NewFragment(pos, vel mgl64.Vec3, lifetime float64, paint draw.Paint) *Fragment {
	f := fragmentPool.Get().(*Fragment)
	f.Position = pos
	f.Velocity = vel
	f.Lifetime = lifetime
	f.MaxLifetime = lifetime
	f.Drag = 0.95
	f.Paint = paint
	return f
}

// Release returns the fragment to the pool for reuse.
// Should be called when the fragment is removed from the game.
func (f *Fragment) Release() {
	fragmentPool.Put(f)
}

// SpawnFragments throws count fragments out from pos in random directions.
func SpawnFragments(pos mgl64.Vec3, count int, speed, lifetime float64, paint draw.Paint, spawner Spawner, rng *rand.Rand) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		// Uniform direction on the unit sphere
		z := rng.Float64()*2 - 1
		angle := rng.Float64() * 2 * math.Pi
		r := math.Sqrt(1 - z*z)
		dir := mgl64.Vec3{r * math.Cos(angle), r * math.Sin(angle), z}

		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rng.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + rng.Float64()*0.5)

		spawner.Spawn(NewFragment(pos, dir.Mul(spd), life, paint))
	}
}

// Update moves the fragment and checks lifetime.
func (f *Fragment) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	f.Lifetime -= dt
	if f.Lifetime <= 0 {
		return true, nil
	}

	dragFactor := math.Pow(f.Drag, dt*60) // Normalize drag to ~60fps
	f.Velocity = f.Velocity.Mul(dragFactor)
	f.Position = f.Position.Add(f.Velocity.Mul(dt))

	return false, nil
}

// Draw renders the fragment as a short streak along its velocity, fading with age.
func (f *Fragment) Draw(ctx DrawContext) error {
	if f.MaxLifetime <= 0 || ctx.Renderer == nil {
		return nil
	}
	paint := f.Paint
	paint.Alpha *= f.Lifetime / f.MaxLifetime
	tail := f.Position.Sub(f.Velocity.Mul(0.03))
	ctx.Renderer.Segment(tail, f.Position, paint)
	return nil
}
