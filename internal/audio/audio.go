// Package audio decodes and synthesizes music, plays it and turns what is
// playing into the spectrum frames that drive the flight envelope.
package audio

import "github.com/gopxl/beep"

// SampleRate is the rate every track is resampled to.
const SampleRate = beep.SampleRate(44100)

// Analyser geometry.
const (
	FFTSize = 512
	Bins    = FFTSize / 2
)

// Format is the in-memory format of decoded and synthesized tracks.
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// Track is a decoded piece of music ready to play.
type Track struct {
	Name   string
	Buffer *beep.Buffer
	Loop   bool
}

// Streamer returns a fresh streamer over the whole track.
func (t *Track) Streamer() beep.Streamer {
	s := t.Buffer.Streamer(0, t.Buffer.Len())
	if t.Loop {
		return beep.Loop(-1, s)
	}
	return s
}

// Duration is the length of one pass through the track.
func (t *Track) Duration() float64 {
	return SampleRate.D(t.Buffer.Len()).Seconds()
}
