package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// tapSize is how many mono samples the tap remembers.
const tapSize = FFTSize * 4

// Tap passes a stream through unchanged and remembers the most recent
// samples, mixed to mono, for analysis. Stream may run on an audio device
// goroutine while Latest is called from the game loop.
type Tap struct {
	Streamer beep.Streamer

	mu     sync.Mutex
	ring   [tapSize]float64
	pos    int
	filled int
}

// NewTap wraps s.
func NewTap(s beep.Streamer) *Tap {
	return &Tap{Streamer: s}
}

func (t *Tap) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = t.Streamer.Stream(samples)

	t.mu.Lock()
	for _, s := range samples[:n] {
		t.ring[t.pos] = (s[0] + s[1]) / 2
		t.pos = (t.pos + 1) % tapSize
	}
	t.filled = min(t.filled+n, tapSize)
	t.mu.Unlock()

	return n, ok
}

func (t *Tap) Err() error { return t.Streamer.Err() }

// Latest copies the most recent len(dst) samples into dst, oldest first.
// Slots not yet filled are zero. It returns the number of real samples.
func (t *Tap) Latest(dst []float64) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := min(len(dst), t.filled)
	clear(dst[:len(dst)-n])
	start := (t.pos - n + tapSize) % tapSize
	for i := 0; i < n; i++ {
		dst[len(dst)-n+i] = t.ring[(start+i)%tapSize]
	}
	return n
}
