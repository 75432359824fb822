package audio

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Output selects who pulls samples from the playing source.
type Output int

const (
	OutputPump     Output = iota // the game loop, via Advance
	OutputSpeaker                // the local sound device
	OutputExternal               // the caller, via the OnSource hook
)

// FileSlot is the deck slot of the configured audio file; 1..PresetCount are presets.
const FileSlot = PresetCount + 1

// ErrNoFile is returned when the file slot is selected without a configured file.
var ErrNoFile = errors.New("no audio file configured")

type loaded struct {
	slot  int
	track *Track
	err   error
}

// Deck owns the music of one session: it loads tracks off the game loop,
// plays one at a time and analyses what is playing.
type Deck struct {
	// OnSource receives every new source when the output is OutputExternal.
	OnSource func(*Source)

	output   Output
	file     string
	logger   *log.Logger
	analyser *Analyser
	samples  []float64
	bins     []byte

	current *Source
	slot    int
	loading chan loaded
}

// NewDeck creates an idle deck. file is the track bound to FileSlot.
func NewDeck(output Output, file string, logger *log.Logger) *Deck {
	if logger == nil {
		logger = log.Default()
	}
	return &Deck{
		output:   output,
		file:     file,
		logger:   logger,
		analyser: NewAnalyser(),
		samples:  make([]float64, FFTSize),
		bins:     make([]byte, Bins),
	}
}

// Toggle selects slot, or switches the music off if slot is already selected.
// Loading runs in the background; Poll picks up the result.
func (d *Deck) Toggle(slot int) error {
	if slot == d.slot {
		d.Stop()
		return nil
	}
	if slot < 1 || slot > FileSlot {
		return fmt.Errorf("no track in slot %d", slot)
	}
	if slot == FileSlot && d.file == "" {
		return ErrNoFile
	}

	d.Stop()
	d.slot = slot
	ch := make(chan loaded, 1)
	d.loading = ch
	file := d.file
	go func() {
		var (
			t   *Track
			err error
		)
		if slot == FileSlot {
			t, err = Decode(file)
		} else {
			t, err = Preset(slot)
		}
		ch <- loaded{slot: slot, track: t, err: err}
	}()
	return nil
}

// Poll starts a finished load without blocking. It returns the track that
// started playing, or the error that stopped it from loading.
func (d *Deck) Poll() (*Track, error) {
	if d.loading == nil {
		return nil, nil
	}
	var res loaded
	select {
	case res = <-d.loading:
	default:
		return nil, nil
	}
	d.loading = nil

	if res.err != nil {
		d.slot = 0
		return nil, res.err
	}

	src := NewSource(res.track)
	d.analyser.Reset()
	switch d.output {
	case OutputSpeaker:
		if err := playOnSpeaker(src); err != nil {
			d.logger.Warn("speaker unavailable, playing silently", "err", err)
			d.output = OutputPump
		}
	case OutputExternal:
		if d.OnSource != nil {
			d.OnSource(src)
		}
	}
	d.current = src
	d.logger.Info("track playing", "track", res.track.Name, "seconds", res.track.Duration())
	return res.track, nil
}

// Advance pulls d worth of audio when no device is doing it.
func (d *Deck) Advance(dt time.Duration) {
	if d.output == OutputPump && d.current != nil {
		d.current.Advance(dt)
	}
}

// Spectrum analyses the playing track. It returns nil while nothing plays.
// The returned slice is reused by the next call.
func (d *Deck) Spectrum() []byte {
	if d.current == nil {
		return nil
	}
	if !d.current.Playing() {
		d.current = nil
		d.slot = 0
		return nil
	}
	if d.current.Latest(d.samples) == 0 {
		return nil
	}
	d.analyser.Analyse(d.samples, d.bins)
	return d.bins
}

// Stop switches the music off and abandons a pending load.
func (d *Deck) Stop() {
	if d.current != nil {
		d.current.Stop()
		d.current = nil
	}
	d.loading = nil
	d.slot = 0
}

// Slot returns the selected slot, 0 when the deck is idle.
func (d *Deck) Slot() int { return d.slot }

// Loading reports whether a track is being prepared.
func (d *Deck) Loading() bool { return d.loading != nil }

// Playing reports whether a track is playing.
func (d *Deck) Playing() bool { return d.current != nil && d.current.Playing() }

// SlotName names slot for the settings screen.
func (d *Deck) SlotName(slot int) string {
	if slot == FileSlot {
		if d.file == "" {
			return "(no file)"
		}
		return d.file
	}
	if slot >= 1 && slot <= PresetCount {
		return PresetNames[slot-1]
	}
	return ""
}
