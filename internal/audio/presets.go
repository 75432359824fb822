package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// PresetCount is the number of bundled tracks, selected with keys 1..3.
const PresetCount = 3

// PresetNames are the display names of the bundled tracks.
var PresetNames = [PresetCount]string{"Pulse", "Drift", "Storm"}

// step is one sequencer slot: a frequency (0 rests) held for a number of beats.
type step struct {
	freq  float64
	beats float64
}

// Note frequencies used by the presets.
const (
	a1 = 55.00
	c2 = 65.41
	d2 = 73.42
	e2 = 82.41
	g2 = 98.00
	a2 = 110.00
	c3 = 130.81
	e3 = 164.81
	g3 = 196.00
	a3 = 220.00
	c4 = 261.63
	d4 = 293.66
	e4 = 329.63
	g4 = 392.00
	a4 = 440.00
	c5 = 523.25
	e5 = 659.25
)

// Preset synthesizes bundled track n (1-based) into memory.
func Preset(n int) (*Track, error) {
	var (
		s   beep.Streamer
		err error
	)
	switch n {
	case 1:
		s, err = pulse()
	case 2:
		s, err = drift()
	case 3:
		s, err = storm()
	default:
		return nil, fmt.Errorf("no preset %d", n)
	}
	if err != nil {
		return nil, fmt.Errorf("synthesizing preset %d: %w", n, err)
	}

	buf := beep.NewBuffer(Format)
	buf.Append(s)
	return &Track{Name: PresetNames[n-1], Buffer: buf, Loop: true}, nil
}

// pulse: 120 bpm four-on-the-floor with a saw bass and a square arpeggio.
func pulse() (beep.Streamer, error) {
	beat := 500 * time.Millisecond
	bass := []step{
		{a1, 1}, {a1, 1}, {c2, 1}, {a1, 1}, {d2, 1}, {d2, 1}, {e2, 1}, {g2, 1},
		{a1, 1}, {a1, 1}, {c2, 1}, {a1, 1}, {e2, 1}, {d2, 1}, {c2, 1}, {a1, 1},
	}
	arp := repeat([]step{{a3, 0.5}, {c4, 0.5}, {e4, 0.5}, {a4, 0.5}}, 8)
	return beep.Mix(
		kicks(16, beat, 0.9),
		phrase(bass, beat, WaveSaw, 0.35),
		phrase(arp, beat, WaveSquare, 0.08),
	), nil
}

// drift: 80 bpm sine pads over a sparse kick.
func drift() (beep.Streamer, error) {
	beat := 750 * time.Millisecond
	chords := [][]float64{{a2, c3, e3}, {g2, d4, g3}, {c3, e3, g3}, {e2, g3, c4}}
	var pads []beep.Streamer
	for _, chord := range chords {
		d := 4 * beat
		var voices []beep.Streamer
		for _, f := range chord {
			tone, err := generators.SineTone(SampleRate, f)
			if err != nil {
				return nil, err
			}
			voices = append(voices, newVolume(NewEnvelope(beep.Take(SampleRate.N(d), tone), d, d/4, d/3, SampleRate), 0.15))
		}
		pads = append(pads, beep.Mix(voices...))
	}
	return beep.Mix(
		beep.Seq(pads...),
		kicks(16, beat, 0.7),
	), nil
}

// storm: 150 bpm with noise hats, double kicks and a square lead.
func storm() (beep.Streamer, error) {
	beat := 400 * time.Millisecond
	lead := []step{
		{e4, 1}, {g4, 0.5}, {a4, 0.5}, {c5, 1}, {a4, 1},
		{e5, 1.5}, {d4, 0.5}, {e4, 2},
		{c4, 1}, {d4, 1}, {e4, 1}, {g4, 1},
		{a4, 2}, {0, 1}, {e4, 1},
	}
	var hats []beep.Streamer
	for i := 0; i < 32; i++ {
		d := beat / 2
		hat := NewEnvelope(NewOscillator(0, d/4, WaveNoise, SampleRate), d/4, 0, d/4, SampleRate)
		hats = append(hats, newVolume(hat, 0.12), beep.Silence(SampleRate.N(d-d/4)))
	}
	return beep.Mix(
		kicks(32, beat/2, 0.9),
		beep.Seq(hats...),
		phrase(lead, beat, WaveSquare, 0.1),
	), nil
}

// kicks plays count kick drums, one every interval.
func kicks(count int, interval time.Duration, vol float64) beep.Streamer {
	hit := 180 * time.Millisecond
	var seq []beep.Streamer
	for i := 0; i < count; i++ {
		kick := NewEnvelope(NewOscillator(a1, hit, WaveSine, SampleRate), hit, 2*time.Millisecond, 150*time.Millisecond, SampleRate)
		seq = append(seq, newVolume(kick, vol))
		if rest := interval - hit; rest > 0 {
			seq = append(seq, beep.Silence(SampleRate.N(rest)))
		}
	}
	return beep.Seq(seq...)
}

// phrase plays steps one after another on a single voice.
func phrase(steps []step, beat time.Duration, wave WaveType, vol float64) beep.Streamer {
	var seq []beep.Streamer
	for _, st := range steps {
		d := time.Duration(st.beats * float64(beat))
		if st.freq == 0 {
			seq = append(seq, beep.Silence(SampleRate.N(d)))
			continue
		}
		note := NewEnvelope(NewOscillator(st.freq, d, wave, SampleRate), d, 10*time.Millisecond, d/3, SampleRate)
		seq = append(seq, newVolume(note, vol))
	}
	return beep.Seq(seq...)
}

func repeat(steps []step, n int) []step {
	out := make([]step, 0, len(steps)*n)
	for i := 0; i < n; i++ {
		out = append(out, steps...)
	}
	return out
}
