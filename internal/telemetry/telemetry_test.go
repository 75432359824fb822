package telemetry

import (
	"context"
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordOnNoopProvider(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		m.SessionStarted("full")
		m.Frame()
		m.Damage("rock", 10)
		m.Kill("drone", 10)
		m.GameOver(120)
	})
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionStarted("prototype")
		m.Frame()
		m.Damage("laser", 5)
		m.Kill("enemy_ship", 50)
		m.GameOver(0)
	})
}

func TestRunPoint_LineProtocol(t *testing.T) {
	p := RunPoint(Run{
		Player:   "alice",
		Mode:     "full",
		Score:    120,
		HP:       0,
		Duration: 90 * time.Second,
		Reason:   "destroyed",
		At:       time.Unix(1700000000, 0),
	})

	line := influxdb2_write.PointToLineProtocol(p, time.Second)
	assert.Contains(t, line, "run,mode=full,player=alice,reason=destroyed ")
	assert.Contains(t, line, "score=120i")
	assert.Contains(t, line, "duration_s=90")
	assert.Contains(t, line, "1700000000")
}

func TestNewSink_DisabledIsNop(t *testing.T) {
	s := NewSink(InfluxConfig{})
	assert.IsType(t, Nop{}, s)
	assert.NoError(t, s.Record(context.Background(), Run{}))
	s.Close()
}
