// Package loop wires what every frontend shares: the high score store, the
// session hub, metrics and the run sink.
package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacebeat/internal/audio"
	"github.com/tomz197/spacebeat/internal/config"
	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/loop/client"
	gameconfig "github.com/tomz197/spacebeat/internal/loop/config"
	"github.com/tomz197/spacebeat/internal/loop/server"
	"github.com/tomz197/spacebeat/internal/store"
	"github.com/tomz197/spacebeat/internal/telemetry"
)

// Runtime is the running shared state of one process.
type Runtime struct {
	Config  *config.Config
	Logger  *log.Logger
	Mode    gameconfig.Mode
	Server  *server.Server
	Metrics *telemetry.Metrics
	Runs    telemetry.RunSink

	store  store.Store
	cancel context.CancelFunc
}

// Start opens the store, starts the session hub and the telemetry sinks.
func Start(cfg *config.Config, logger *log.Logger) (*Runtime, error) {
	mode, err := gameconfig.ModeByName(cfg.Mode)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.HighScore.Backend, cfg.HighScore.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open high score store: %w", err)
	}

	srv, err := server.NewServer(st, cfg.HighScore.Key, logger.WithPrefix("server"))
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to load high score: %w", err)
	}

	metrics, err := telemetry.New()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go srv.Run(ctx)

	best, _ := srv.HighScore()
	logger.Info("Game server started", "mode", mode.Name, "store", cfg.HighScore.Backend, "highScore", best)

	return &Runtime{
		Config:  cfg,
		Logger:  logger,
		Mode:    mode,
		Server:  srv,
		Metrics: metrics,
		Runs: telemetry.NewSink(telemetry.InfluxConfig{
			Enabled: cfg.Influx.Enabled,
			URL:     cfg.Influx.URL,
			Token:   cfg.Influx.Token,
			Org:     cfg.Influx.Org,
			Bucket:  cfg.Influx.Bucket,
		}),
		store:  st,
		cancel: cancel,
	}, nil
}

// ClientOptions returns the options of a new client for username.
func (r *Runtime) ClientOptions(username string, sizeFunc draw.TermSizeFunc, output audio.Output) client.ClientOptions {
	return client.ClientOptions{
		TermSizeFunc: sizeFunc,
		Username:     username,
		Mode:         r.Mode,
		Seed:         r.Config.Seed,
		Audio:        output,
		AudioFile:    r.Config.Audio.File,
		Metrics:      r.Metrics,
		Runs:         r.Runs,
		Logger:       r.Logger,
	}
}

// Stop notifies connected players, waits up to timeout for them to leave and
// releases everything Start opened.
func (r *Runtime) Stop(timeout time.Duration) {
	r.Server.Shutdown(timeout)
	r.cancel()
	r.Runs.Close()
	if err := r.store.Close(); err != nil {
		r.Logger.Error("Failed to close high score store", "err", err)
	}
	r.Logger.Info("Game server stopped")
}
