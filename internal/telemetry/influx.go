package telemetry

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Run is the summary of one finished game.
type Run struct {
	Player   string
	Mode     string
	Score    int
	HP       int
	Duration time.Duration
	Reason   string // "destroyed", "quit", "shutdown"
	At       time.Time
}

// RunSink receives finished runs.
type RunSink interface {
	Record(ctx context.Context, run Run) error
	Close()
}

// Nop discards runs.
type Nop struct{}

func (Nop) Record(context.Context, Run) error { return nil }
func (Nop) Close()                            {}

// InfluxConfig selects the InfluxDB bucket runs are written to.
type InfluxConfig struct {
	Enabled bool
	URL     string
	Token   string
	Org     string
	Bucket  string
}

// Influx writes runs as points of the "run" measurement.
type Influx struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPIBlocking
}

// NewSink returns an Influx sink when cfg is enabled, Nop otherwise.
func NewSink(cfg InfluxConfig) RunSink {
	if !cfg.Enabled || cfg.URL == "" {
		return Nop{}
	}
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPRequestTimeout(5))
	return &Influx{
		client: client,
		writer: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
	}
}

func (i *Influx) Record(ctx context.Context, run Run) error {
	if err := i.writer.WritePoint(ctx, RunPoint(run)); err != nil {
		return fmt.Errorf("failed to write run to influxdb: %w", err)
	}
	return nil
}

func (i *Influx) Close() {
	i.client.Close()
}

// RunPoint converts run into a line-protocol point.
func RunPoint(run Run) *influxdb2_write.Point {
	at := run.At
	if at.IsZero() {
		at = time.Now()
	}
	return influxdb2.NewPoint(
		"run",
		map[string]string{
			"mode":   run.Mode,
			"player": run.Player,
			"reason": run.Reason,
		},
		map[string]interface{}{
			"score":      run.Score,
			"hp":         run.HP,
			"duration_s": run.Duration.Seconds(),
		},
		at,
	)
}
