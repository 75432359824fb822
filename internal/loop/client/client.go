package client

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacebeat/internal/audio"
	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/game"
	"github.com/tomz197/spacebeat/internal/input"
	"github.com/tomz197/spacebeat/internal/loop/config"
	"github.com/tomz197/spacebeat/internal/loop/server"
	"github.com/tomz197/spacebeat/internal/scene"
	"github.com/tomz197/spacebeat/internal/telemetry"
)

// Client handles rendering and input for a single connection. Each client
// runs its own game session; the server only shares the high score.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	session      *game.Session
	deck         *audio.Deck
	canvas       *draw.Canvas
	renderer     *scene.Renderer
	chunkWriter  *draw.ChunkWriter // Assembles each frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	metrics      *telemetry.Metrics
	runs         telemetry.RunSink
	logger       *log.Logger
	holder       string // who holds the high score, when known
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Mode         config.Mode
	Seed         int64
	Audio        audio.Output
	AudioFile    string
	Metrics      *telemetry.Metrics
	Runs         telemetry.RunSink
	Logger       *log.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	runs := opts.Runs
	if runs == nil {
		runs = telemetry.Nop{}
	}
	mode := opts.Mode
	if mode.Name == "" {
		mode = config.Prototype
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("client", handle.ID)
	snapshot := gs.GetSnapshot()

	var recorder game.Recorder
	if opts.Metrics != nil {
		recorder = opts.Metrics
	}
	session := game.NewSession(game.Options{
		Mode:      mode,
		Seed:      seed,
		HighScore: snapshot.HighScore,
		Scores:    server.ScoreReporter{Server: gs, ClientID: handle.ID},
		Recorder:  recorder,
	})

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		session:      session,
		deck:         audio.NewDeck(opts.Audio, opts.AudioFile, logger),
		canvas:       canvas,
		renderer:     scene.NewRenderer(canvas, session.Camera),
		chunkWriter:  draw.NewChunkWriter(w, canvas),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		metrics:      opts.Metrics,
		runs:         runs,
		logger:       logger,
		holder:       snapshot.Holder,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.EnterGameScreen(c.writer)
	defer draw.LeaveGameScreen(c.writer)

	c.metrics.SessionStarted(c.session.Mode.Name)
	lastTime := time.Now()
	var runErr error

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateSettings:
			c.updateSettingsState()
		case GameStateOver:
			c.updateOverState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		c.session.Step(c.controls(), c.updateMusic(), c.state.delta)
		c.checkGameOver()

		if err := c.drawFrame(); err != nil {
			runErr = err
			break
		}
		c.metrics.Frame()

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	if c.state.GameState == GameStateShutdown {
		c.recordRun("shutdown")
	} else {
		c.recordRun("quit")
	}
	c.deck.Stop()

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	if runErr != nil {
		return runErr
	}
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if p := c.state.Input.Pointer; c.state.Input.Moved && p.Valid {
		c.state.PointerY = pointerY(p.Row, c.canvas.OffsetRow(), c.canvas.TerminalHeight())
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventHighScore:
				if event.HighScore > c.session.HighScore {
					c.session.HighScore = event.HighScore
					c.holder = event.Holder
				}
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
				c.session.Pause()
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth == c.canvas.TerminalWidth() && renderHeight == c.canvas.TerminalHeight() &&
		offsetCol == c.canvas.OffsetCol() && offsetRow == c.canvas.OffsetRow() {
		return
	}

	draw.ClearScreen(c.writer)
	c.canvas = draw.NewCanvas(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.renderer.Surface = c.canvas
	c.chunkWriter.SetCanvas(c.canvas)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), config.MaxTermWidth)
	renderHeight = min(max(termHeight, 1), config.MaxTermHeight)
	offsetCol = max(termWidth-renderWidth, 0) / 2
	offsetRow = max(termHeight-renderHeight, 0) / 2
	return
}

// pointerY maps a 1-based terminal row to -1 (top of the canvas) .. 1 (bottom).
func pointerY(row, offsetRow, height int) float64 {
	if height <= 0 {
		return 0
	}
	y := float64(row-offsetRow-1)/float64(height)*2 - 1
	return min(max(y, -1), 1)
}

// controls turns this frame's keys into the session's controls.
func (c *Client) controls() game.Controls {
	in := c.state.Input
	if c.state.GameState != GameStatePlaying {
		return game.Controls{PointerY: c.state.PointerY}
	}
	return game.Controls{
		Left:     in.Left,
		Right:    in.Right,
		Up:       in.Up,
		Down:     in.Down,
		Fire:     in.Space,
		PointerY: c.state.PointerY,
	}
}

// updateMusic starts finished track loads and returns the spectrum of the
// playing track, nil when there is none.
func (c *Client) updateMusic() []byte {
	wasPlaying := c.deck.Playing()
	track, err := c.deck.Poll()
	switch {
	case err != nil:
		c.logger.Warn("Could not load track", "err", err)
		c.state.musicError = "could not load track"
		c.session.Notify(game.SlotHit, "Could not load track", config.MessageLevel)
	case track != nil:
		c.state.musicError = ""
	}

	c.deck.Advance(c.state.delta)
	spectrum := c.deck.Spectrum()
	if wasPlaying && !c.deck.Playing() {
		c.session.ResetBounds()
	}
	return spectrum
}

// checkGameOver moves to the game over screen once the ship is destroyed.
func (c *Client) checkGameOver() {
	if c.session.GameOver && c.state.GameState == GameStatePlaying {
		c.recordRun("destroyed")
		c.state.GameState = GameStateOver
	}
}

// updateStartState handles the start screen.
func (c *Client) updateStartState() {
	switch {
	case c.state.Input.Tapped(' '):
		c.startGame()
	case c.state.Input.Tapped('\r', '\n'):
		c.openSettings()
	}
}

// updatePlayingState handles the playing state.
func (c *Client) updatePlayingState() {
	if c.state.Input.Tapped('\r', '\n') {
		c.openSettings()
	}
}

// updateSettingsState handles the settings menu.
func (c *Client) updateSettingsState() {
	in := c.state.Input
	for _, b := range in.Typed {
		switch b {
		case '1', '2', '3', '4':
			c.toggleMusic(int(b - '0'))
		case 'm', 'M':
			c.session.SetMode(c.session.Mode.Toggle())
			c.metrics.SessionStarted(c.session.Mode.Name)
		case 'r', 'R':
			c.recordRun("restart")
			c.session.Restart()
			c.state.settingsFrom = GameStateStart
		}
	}
	if in.Tapped('\r', '\n') {
		c.closeSettings()
	}
}

// updateOverState handles the game over screen.
func (c *Client) updateOverState() {
	switch {
	case c.state.Input.Tapped(' '):
		c.session.Restart()
		c.startGame()
	case c.state.Input.Tapped('\r', '\n'):
		c.openSettings()
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// startGame starts or resumes play.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	if c.state.runStarted.IsZero() || c.state.runRecorded {
		c.state.runStarted = time.Now()
		c.state.runRecorded = false
	}
	c.session.Start()
	c.state.GameState = GameStatePlaying
}

func (c *Client) openSettings() {
	input.ResetKeyInput(c.inputStream)
	c.session.Pause()
	c.state.settingsFrom = c.state.GameState
	c.state.GameState = GameStateSettings
}

func (c *Client) closeSettings() {
	switch {
	case c.session.GameOver:
		c.state.GameState = GameStateOver
	case c.state.settingsFrom == GameStatePlaying:
		c.startGame()
	default:
		input.ResetKeyInput(c.inputStream)
		c.state.GameState = GameStateStart
	}
}

func (c *Client) toggleMusic(slot int) {
	err := c.deck.Toggle(slot)
	switch {
	case errors.Is(err, audio.ErrNoFile):
		c.state.musicError = "no audio file configured"
	case err != nil:
		c.state.musicError = err.Error()
	default:
		c.state.musicError = ""
	}
	if c.deck.Slot() == 0 {
		c.session.ResetBounds()
	}
}

// recordRun sends the current game to the run sink once.
func (c *Client) recordRun(reason string) {
	if c.state.runRecorded || c.state.runStarted.IsZero() {
		return
	}
	c.state.runRecorded = true
	run := telemetry.Run{
		Player:   c.username,
		Mode:     c.session.Mode.Name,
		Score:    c.session.Score,
		HP:       c.session.HP,
		Duration: time.Since(c.state.runStarted),
		Reason:   reason,
		At:       time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.runs.Record(ctx, run); err != nil {
			c.logger.Warn("Failed to record run", "err", err)
		}
	}()
}
