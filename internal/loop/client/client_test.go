package client

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/spacebeat/internal/input"
	"github.com/tomz197/spacebeat/internal/loop/config"
	"github.com/tomz197/spacebeat/internal/loop/server"
)

type fakeServer struct {
	handle   *server.ClientHandle
	reported []int
	gone     bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{handle: &server.ClientHandle{ID: 1, EventsCh: make(chan server.ClientEvent, 4)}}
}

func (f *fakeServer) RegisterClient(username string) *server.ClientHandle {
	f.handle.Username = username
	return f.handle
}

func (f *fakeServer) UnregisterClient(int) { f.gone = true }

func (f *fakeServer) ReportScore(_ int, score int) bool {
	f.reported = append(f.reported, score)
	return true
}

func (f *fakeServer) GetSnapshot() *server.Snapshot {
	return &server.Snapshot{Players: 1, HighScore: 40, Holder: "zed"}
}

func newTestClient(t *testing.T) (*Client, *fakeServer, *bytes.Buffer) {
	t.Helper()
	fs := newFakeServer()
	out := &bytes.Buffer{}
	c := NewClient(fs, bufio.NewReader(strings.NewReader("")), out, ClientOptions{
		Username:     "tester",
		Seed:         3,
		TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
	})
	return c, fs, out
}

func typed(keys string) input.Input {
	return input.Input{Typed: []byte(keys), Pressed: []byte(keys), Number: -1}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(80, 24)
	assert.Equal(t, []int{80, 24, 0, 0}, []int{w, h, col, row})

	w, h, col, row = clampTermSize(config.MaxTermWidth+40, config.MaxTermHeight+10)
	assert.Equal(t, config.MaxTermWidth, w)
	assert.Equal(t, config.MaxTermHeight, h)
	assert.Equal(t, 20, col)
	assert.Equal(t, 5, row)
}

func TestPointerY(t *testing.T) {
	assert.InDelta(t, -1.0, pointerY(1, 0, 20), 1e-9)
	assert.InDelta(t, 0.0, pointerY(11, 0, 20), 1e-9)
	assert.InDelta(t, 0.0, pointerY(13, 2, 20), 1e-9)
	assert.Equal(t, 1.0, pointerY(500, 0, 20))
	assert.Equal(t, -1.0, pointerY(0, 5, 20))
	assert.Zero(t, pointerY(3, 0, 0))
}

func TestNewClient_TakesHighScoreFromServer(t *testing.T) {
	c, fs, _ := newTestClient(t)
	assert.Equal(t, 40, c.session.HighScore)
	assert.Equal(t, "zed", c.holder)
	assert.Equal(t, "tester", fs.handle.Username)
	assert.Equal(t, config.Prototype.Name, c.session.Mode.Name)
}

func TestStartScreen_SpaceStartsGame(t *testing.T) {
	c, _, _ := newTestClient(t)
	c.state.Input = typed(" ")
	c.updateStartState()

	assert.Equal(t, GameStatePlaying, c.state.GameState)
	assert.True(t, c.session.Started)
	assert.False(t, c.state.runStarted.IsZero())
}

func TestSettings_PauseAndResume(t *testing.T) {
	c, _, _ := newTestClient(t)
	c.startGame()

	c.state.Input = typed("\r")
	c.updatePlayingState()
	require.Equal(t, GameStateSettings, c.state.GameState)
	assert.False(t, c.session.Started)

	c.state.Input = typed("m")
	c.updateSettingsState()
	assert.Equal(t, config.Full.Name, c.session.Mode.Name)

	c.state.Input = typed("\r")
	c.updateSettingsState()
	assert.Equal(t, GameStatePlaying, c.state.GameState)
	assert.True(t, c.session.Started)
}

func TestSettings_FileSlotWithoutFile(t *testing.T) {
	c, _, _ := newTestClient(t)
	c.openSettings()
	c.state.Input = typed("4")
	c.updateSettingsState()
	assert.Equal(t, "no audio file configured", c.state.musicError)
	assert.Zero(t, c.deck.Slot())
}

func TestServerEvents(t *testing.T) {
	c, fs, _ := newTestClient(t)
	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventHighScore, HighScore: 90, Holder: "amy"}
	c.processServerEvents()
	assert.Equal(t, 90, c.session.HighScore)
	assert.Equal(t, "amy", c.holder)

	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()
	assert.Equal(t, GameStateShutdown, c.state.GameState)
	assert.Equal(t, config.ShutdownDisplaySeconds, c.state.shutdownTimer)

	close(fs.handle.EventsCh)
	c.processServerEvents()
	assert.False(t, c.state.Running)
}

func TestScoreReporter_ForwardsToServer(t *testing.T) {
	fs := newFakeServer()
	server.ScoreReporter{Server: fs, ClientID: 1}.SaveHighScore(41)
	assert.Equal(t, []int{41}, fs.reported)
}

func TestGameOver_ShowsOverAndRestarts(t *testing.T) {
	c, _, _ := newTestClient(t)
	c.startGame()
	c.session.GameOver = true
	c.session.Ship = nil

	c.checkGameOver()
	require.Equal(t, GameStateOver, c.state.GameState)
	assert.True(t, c.state.runRecorded)

	c.state.Input = typed(" ")
	c.updateOverState()
	assert.Equal(t, GameStatePlaying, c.state.GameState)
	assert.False(t, c.session.GameOver)
	assert.NotNil(t, c.session.Ship)
	assert.False(t, c.state.runRecorded)
}

func TestDrawFrame_WritesHUD(t *testing.T) {
	c, _, out := newTestClient(t)
	c.startGame()
	require.NoError(t, c.drawFrame())
	assert.Contains(t, out.String(), "Ship HP: 100")
	assert.Contains(t, out.String(), "Players: 1")

	out.Reset()
	c.state.GameState = GameStateStart
	require.NoError(t, c.drawFrame())
	assert.Contains(t, out.String(), "High Score: 40 by zed")
}
