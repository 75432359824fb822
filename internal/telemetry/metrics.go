// Package telemetry counts gameplay events with OpenTelemetry and
// optionally reports finished runs to InfluxDB.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the game's instruments. A nil *Metrics records nothing.
type Metrics struct {
	sessions metric.Int64Counter
	frames   metric.Int64Counter
	damage   metric.Int64Counter
	kills    metric.Int64Counter
	score    metric.Int64Counter
	gameOver metric.Int64Counter
}

// New creates the instruments on the global meter provider
// (a no-op provider unless one was installed).
func New() (*Metrics, error) {
	m := meter()
	var (
		mt  Metrics
		err error
	)

	mt.sessions, err = m.Int64Counter(
		"spacebeat.sessions",
		metric.WithDescription("Game sessions started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}

	mt.frames, err = m.Int64Counter(
		"spacebeat.frames",
		metric.WithDescription("Frames rendered"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	mt.damage, err = m.Int64Counter(
		"spacebeat.ship.damage",
		metric.WithDescription("Hit points lost, by source"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}

	mt.kills, err = m.Int64Counter(
		"spacebeat.kills",
		metric.WithDescription("Enemies destroyed, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}

	mt.score, err = m.Int64Counter(
		"spacebeat.score",
		metric.WithDescription("Points awarded, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating score counter: %w", err)
	}

	mt.gameOver, err = m.Int64Counter(
		"spacebeat.game_over",
		metric.WithDescription("Games that ended with the ship destroyed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating game over counter: %w", err)
	}

	return &mt, nil
}

// SessionStarted counts a new session in the given mode.
func (m *Metrics) SessionStarted(mode string) {
	if m == nil {
		return
	}
	m.sessions.Add(context.Background(), 1, metric.WithAttributes(attribute.String("mode", mode)))
}

// Frame counts one rendered frame.
func (m *Metrics) Frame() {
	if m == nil {
		return
	}
	m.frames.Add(context.Background(), 1)
}

func (m *Metrics) Damage(source string, amount int) {
	if m == nil {
		return
	}
	m.damage.Add(context.Background(), int64(amount), metric.WithAttributes(attribute.String("source", source)))
}

func (m *Metrics) Kill(kind string, reward int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("kind", kind))
	m.kills.Add(context.Background(), 1, attrs)
	m.score.Add(context.Background(), int64(reward), attrs)
}

func (m *Metrics) GameOver(int) {
	if m == nil {
		return
	}
	m.gameOver.Add(context.Background(), 1)
}
