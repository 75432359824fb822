package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker opens the local sound device once per process.
func initSpeaker() error {
	speakerOnce.Do(func() {
		if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
			speakerErr = fmt.Errorf("opening speaker: %w", err)
		}
	})
	return speakerErr
}

// playOnSpeaker hands s to the device, which drops it once s stops.
func playOnSpeaker(s beep.Streamer) error {
	if err := initSpeaker(); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}
