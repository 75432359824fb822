package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// Source is one playing track. A device (speaker, ebiten player) pulls it
// through Stream; without a device the game loop pulls it in real time
// with Advance so the tap still sees the music.
type Source struct {
	Track *Track

	tap *Tap

	mu      sync.Mutex
	stopped bool
	done    bool
	scratch [][2]float64
}

// NewSource prepares t for playback from the start.
func NewSource(t *Track) *Source {
	return &Source{Track: t, tap: NewTap(t.Streamer())}
}

func (s *Source) Stream(samples [][2]float64) (n int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.done {
		return 0, false
	}
	n, ok = s.tap.Stream(samples)
	if !ok {
		s.done = true
	}
	return n, ok
}

func (s *Source) Err() error { return s.tap.Err() }

// Advance pulls d worth of samples and throws them away.
func (s *Source) Advance(d time.Duration) {
	n := SampleRate.N(d)
	if n <= 0 {
		return
	}
	if cap(s.scratch) < n {
		s.scratch = make([][2]float64, n)
	}
	buf := s.scratch[:n]
	for len(buf) > 0 {
		got, ok := s.Stream(buf)
		if !ok {
			return
		}
		buf = buf[got:]
	}
}

// Stop ends playback. Stopping twice, or stopping a finished source, is a no-op.
func (s *Source) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

// Playing reports whether the source still produces sound.
func (s *Source) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped && !s.done
}

// Latest copies the most recent samples into dst, see Tap.Latest.
func (s *Source) Latest(dst []float64) int {
	return s.tap.Latest(dst)
}

var _ beep.Streamer = (*Source)(nil)
