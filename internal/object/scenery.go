package object

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/scene"
)

// Backdrop sizes.
const (
	StarCount   = 2000
	PlanetCount = 11
)

var planetColors = []string{
	"#66ccff", "#3399ff", "#0033cc", "#6699ff", "#33cccc",
	"#00ffee", "#6633ff", "#9966ff", "#330066",
}

// NewBackdrop scatters stars and planets outside the play square.
func NewBackdrop(rng *rand.Rand) *scene.Node {
	g := scene.NewGroup()
	white := draw.Hex("#ffffff")
	for i := 0; i < StarCount; i++ {
		x, y := outsidePlaySquare(rng, 200)
		star := scene.NewNode(nil, white)
		star.Point = true
		star.Position = mgl64.Vec3{x, y, between(rng, -270, 250)}
		g.Add(star)
	}
	for i := 0; i < PlanetCount; i++ {
		x, y := outsidePlaySquare(rng, 150)
		paint := draw.Hex(planetColors[rng.Intn(len(planetColors))])
		planet := scene.NewNode(scene.Sphere(between(rng, 3, 4), 12, 8), paint)
		planet.Position = mgl64.Vec3{x, y, between(rng, -240, 200)}
		g.Add(planet)
	}
	return g
}

// outsidePlaySquare draws x, y in [-r, r) until the point lies outside the 25x25 square.
func outsidePlaySquare(rng *rand.Rand, r float64) (float64, float64) {
	for {
		x := between(rng, -r, 2*r)
		y := between(rng, -r, 2*r)
		if math.Abs(x) >= RecycleRange || math.Abs(y) >= RecycleRange {
			return x, y
		}
	}
}

// BoundsBox is the flight envelope drawn around the play corridor.
type BoundsBox struct {
	Body
	BaseRadius float64
}

// NewBoundsBox builds a white box 2r wide and 20r deep.
func NewBoundsBox(radius float64) *BoundsBox {
	side := radius * 2
	n := scene.NewNode(scene.Box(side, side, side*10), draw.Hex("#ffffff"))
	n.Position = mgl64.Vec3{0, 0, -side + radius/2}
	return &BoundsBox{Body: Body{Node: n}, BaseRadius: radius}
}

// Reset restores the idle look: unit scale, no rotation, white.
func (b *BoundsBox) Reset() {
	b.Node.Scale = mgl64.Vec3{1, 1, 1}
	b.Node.Rotation = mgl64.Vec3{}
	b.Node.Paint = draw.Hex("#ffffff")
}

// EqualizerBars is the number of spectrum bars around the ship.
const EqualizerBars = 16

// Equalizer is a ring of bars around the ship that follows the music.
type Equalizer struct {
	Node *scene.Node
	bars []*scene.Node
}

// NewEqualizer builds a hidden ring of bars.
func NewEqualizer() *Equalizer {
	e := &Equalizer{Node: scene.NewGroup()}
	mesh := scene.Box(0.15, 1, 0.15)
	for i := 0; i < EqualizerBars; i++ {
		bar := scene.NewNode(mesh, draw.Solid(draw.HSL(float64(i)/EqualizerBars, 0.8, 0.55)))
		angle := float64(i) / EqualizerBars * 2 * math.Pi
		bar.Position = mgl64.Vec3{3 * math.Cos(angle), 3 * math.Sin(angle), 0}
		bar.Rotation = mgl64.Vec3{0, 0, angle - math.Pi/2}
		e.bars = append(e.bars, bar)
		e.Node.Add(bar)
	}
	e.Node.Hidden = true
	return e
}

// Update centres the ring on pos and sizes each bar from levels in [0,1].
// Missing levels leave a bar at its minimum height.
func (e *Equalizer) Update(pos mgl64.Vec3, levels []float64) {
	e.Node.Position = pos
	e.Node.Hidden = false
	for i, bar := range e.bars {
		level := 0.0
		if i < len(levels) {
			level = math.Max(0, math.Min(1, levels[i]))
		}
		bar.Scale = mgl64.Vec3{1, 0.2 + level*2.5, 1}
	}
}

// Hide removes the ring from view.
func (e *Equalizer) Hide() {
	e.Node.Hidden = true
}

// Bar returns bar i, for inspection.
func (e *Equalizer) Bar(i int) *scene.Node {
	return e.bars[i]
}
