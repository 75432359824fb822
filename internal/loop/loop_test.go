package loop

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/spacebeat/internal/audio"
	"github.com/tomz197/spacebeat/internal/config"
	gameconfig "github.com/tomz197/spacebeat/internal/loop/config"
	"github.com/tomz197/spacebeat/internal/telemetry"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode: "full",
		Seed: 9,
		HighScore: config.HighScoreConfig{
			Backend: "memory",
			Key:     "highScore",
		},
		Audio: config.AudioConfig{File: "song.mp3"},
	}
}

func TestStart_WiresRuntime(t *testing.T) {
	rt, err := Start(testConfig(), log.New(io.Discard))
	require.NoError(t, err)
	defer rt.Stop(time.Millisecond)

	assert.Equal(t, gameconfig.Full.Name, rt.Mode.Name)
	assert.IsType(t, telemetry.Nop{}, rt.Runs)
	assert.Zero(t, rt.Server.GetSnapshot().HighScore)

	opts := rt.ClientOptions("pat", nil, audio.OutputPump)
	assert.Equal(t, "pat", opts.Username)
	assert.Equal(t, int64(9), opts.Seed)
	assert.Equal(t, "song.mp3", opts.AudioFile)
	assert.Equal(t, gameconfig.Full.Name, opts.Mode.Name)
	assert.Same(t, rt.Metrics, opts.Metrics)
}

func TestStart_RejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = "arcade"
	_, err := Start(cfg, log.New(io.Discard))
	assert.Error(t, err)

	cfg = testConfig()
	cfg.HighScore.Backend = "redis"
	_, err = Start(cfg, log.New(io.Discard))
	assert.Error(t, err)
}
