package game

import (
	"math"

	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/object"
)

// Smoothing for the audio-reactive bounds: new = keep*old + (1-keep)*target.
const (
	boundsKeep   = 0.85
	boundsFollow = 0.15
	minRadius    = 10.0
)

// Bounds turns spectrum frames into the flight envelope. Its accumulators
// start at shrink 1, radius 0 and rotation 0 and carry across frames.
type Bounds struct {
	Shrink   float64
	Radius   float64
	Rotation float64
}

// NewBounds returns the controller in its initial state.
func NewBounds() Bounds {
	return Bounds{Shrink: 1}
}

// Update reads one spectrum frame, restyles the box and returns the edge
// distance the ship must stay within.
func (b *Bounds) Update(bins []byte, box *object.BoundsBox) float64 {
	n := len(bins)

	// Bass: the first 20 bins.
	t := 0.0
	if bass := min(20, n); bass > 0 {
		t = mean(bins[:bass]) / 255
	}

	// Mids: 20%..50% of the spectrum, centred on zero.
	m := 0.0
	if start, end := n/5, n/2; end > start {
		m = mean(bins[start:end])/255 - 0.5
	}

	b.Shrink = b.Shrink*boundsKeep + (1-t*0.7)*boundsFollow

	b.Rotation = b.Rotation*boundsKeep + (m*0.4)*boundsFollow

	b.Radius = b.Radius*boundsKeep + box.BaseRadius*b.Shrink*boundsFollow
	b.Radius = math.Max(b.Radius, minRadius)

	box.Node.Scale[0] = b.Shrink
	box.Node.Scale[1] = b.Shrink
	box.Node.Scale[2] = 1
	box.Node.Rotation[2] += b.Rotation * 0.08
	box.Node.Paint = draw.Paint{
		Color: draw.HSL(0.5+t*2, 0.6+t, 0.3+t*0.7),
		Alpha: 0.4 + t*0.6,
	}

	return math.Sqrt2*b.Radius - 2
}

func mean(bins []byte) float64 {
	sum := 0
	for _, v := range bins {
		sum += int(v)
	}
	return float64(sum) / float64(len(bins))
}
