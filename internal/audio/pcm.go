package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
)

// PCMReader adapts a streamer to signed 16-bit little-endian stereo PCM,
// the format ebiten's audio player reads. When the streamer runs dry the
// reader keeps returning silence so the player never hits EOF.
type PCMReader struct {
	mu  sync.Mutex
	s   beep.Streamer
	buf [][2]float64
}

// NewPCMReader wraps s.
func NewPCMReader(s beep.Streamer) *PCMReader {
	return &PCMReader{s: s}
}

func (r *PCMReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]
	clear(buf)

	filled := 0
	for filled < frames && r.s != nil {
		n, ok := r.s.Stream(buf[filled:])
		filled += n
		if !ok {
			r.s = nil
		}
	}

	for i, smp := range buf {
		for c := 0; c < 2; c++ {
			v := int16(math.Max(-1, math.Min(1, smp[c])) * math.MaxInt16)
			p[i*4+c*2] = byte(v)
			p[i*4+c*2+1] = byte(v >> 8)
		}
	}
	return frames * 4, nil
}

// Swap replaces the streamer being read.
func (r *PCMReader) Swap(s beep.Streamer) {
	r.mu.Lock()
	r.s = s
	r.mu.Unlock()
}
