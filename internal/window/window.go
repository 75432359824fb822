// Package window runs the game in a desktop (or browser) window with ebiten.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tomz197/spacebeat/internal/audio"
	"github.com/tomz197/spacebeat/internal/game"
	"github.com/tomz197/spacebeat/internal/loop"
	"github.com/tomz197/spacebeat/internal/loop/config"
	"github.com/tomz197/spacebeat/internal/loop/server"
	"github.com/tomz197/spacebeat/internal/scene"
	"github.com/tomz197/spacebeat/internal/telemetry"
	"golang.org/x/image/font/basicfont"
)

type screen int

const (
	screenStart screen = iota
	screenPlaying
	screenSettings
	screenOver
)

var (
	textColor  = color.NRGBA{0xcf, 0xe8, 0xff, 0xff}
	alertColor = color.NRGBA{0xff, 0x55, 0x55, 0xff}
	gainColor  = color.NRGBA{0x55, 0xff, 0x88, 0xff}
	levelColor = color.NRGBA{0xff, 0xdd, 0x55, 0xff}
	background = color.NRGBA{0x05, 0x06, 0x0a, 0xff}
)

const lineHeight = 16

// Game is the ebiten frontend of one player.
type Game struct {
	rt       *loop.Runtime
	handle   *server.ClientHandle
	username string
	session  *game.Session
	deck     *audio.Deck
	pcm      *audio.PCMReader
	player   *ebaudio.Player
	surface  *Surface
	renderer *scene.Renderer
	face     text.Face

	screen       screen
	settingsFrom screen
	holder       string
	musicError   string
	runStarted   time.Time
	runRecorded  bool
	shutdown     bool
}

// NewGame registers a player with the runtime's server and prepares the
// audio player fed by the deck.
func NewGame(rt *loop.Runtime, username string) (*Game, error) {
	handle := rt.Server.RegisterClient(username)
	snapshot := rt.Server.GetSnapshot()

	seed := rt.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		rt:       rt,
		handle:   handle,
		username: username,
		session: game.NewSession(game.Options{
			Mode:      rt.Mode,
			Seed:      seed,
			HighScore: snapshot.HighScore,
			Scores:    server.ScoreReporter{Server: rt.Server, ClientID: handle.ID},
			Recorder:  rt.Metrics,
		}),
		deck:    audio.NewDeck(audio.OutputExternal, rt.Config.Audio.File, rt.Logger),
		pcm:     audio.NewPCMReader(nil),
		surface: &Surface{},
		face:    text.NewGoXFace(basicfont.Face7x13),
		holder:  snapshot.Holder,
	}
	g.renderer = scene.NewRenderer(g.surface, g.session.Camera)
	g.deck.OnSource = func(src *audio.Source) { g.pcm.Swap(src) }

	ctx := ebaudio.CurrentContext()
	if ctx == nil {
		ctx = ebaudio.NewContext(int(audio.SampleRate))
	}
	player, err := ctx.NewPlayer(g.pcm)
	if err != nil {
		rt.Server.UnregisterClient(handle.ID)
		return nil, fmt.Errorf("failed to create audio player: %w", err)
	}
	player.SetBufferSize(100 * time.Millisecond)
	player.Play()
	g.player = player
	return g, nil
}

// Run opens the window and blocks until it is closed.
func Run(rt *loop.Runtime, username string) error {
	g, err := NewGame(rt, username)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(rt.Config.Window.Width, rt.Config.Window.Height)
	ebiten.SetWindowTitle("spacebeat")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	rt.Metrics.SessionStarted(g.session.Mode.Name)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Close stops the music and leaves the server.
func (g *Game) Close() {
	if g.shutdown {
		g.recordRun("shutdown")
	} else {
		g.recordRun("quit")
	}
	g.deck.Stop()
	_ = g.player.Close()
	g.rt.Server.UnregisterClient(g.handle.ID)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || g.shutdown {
		return ebiten.Termination
	}
	g.processServerEvents()

	switch g.screen {
	case screenStart:
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.start()
		} else if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.openSettings()
		}
	case screenPlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.openSettings()
		}
	case screenSettings:
		g.updateSettings()
	case screenOver:
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.session.Restart()
			g.start()
		} else if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.openSettings()
		}
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	g.session.Step(g.controls(), g.updateMusic(), dt)
	if g.session.GameOver && g.screen == screenPlaying {
		g.recordRun("destroyed")
		g.screen = screenOver
	}
	g.rt.Metrics.Frame()
	return nil
}

func (g *Game) processServerEvents() {
	for {
		select {
		case event, ok := <-g.handle.EventsCh:
			if !ok {
				g.shutdown = true
				return
			}
			switch event.Type {
			case server.EventHighScore:
				if event.HighScore > g.session.HighScore {
					g.session.HighScore = event.HighScore
					g.holder = event.Holder
				}
			case server.EventServerShutdown:
				g.shutdown = true
			}
		default:
			return
		}
	}
}

func (g *Game) controls() game.Controls {
	_, cy := ebiten.CursorPosition()
	_, h := g.surface.Size()
	c := game.Controls{PointerY: cursorY(cy, int(h))}
	if g.screen != screenPlaying {
		return c
	}
	c.Left = ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	c.Right = ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	c.Up = ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW)
	c.Down = ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS)
	c.Fire = ebiten.IsKeyPressed(ebiten.KeySpace)
	return c
}

// cursorY maps a window row to -1 (top) .. 1 (bottom).
func cursorY(y, height int) float64 {
	if height <= 0 {
		return 0
	}
	return min(max(float64(y)/float64(height)*2-1, -1), 1)
}

func (g *Game) updateMusic() []byte {
	wasPlaying := g.deck.Playing()
	if _, err := g.deck.Poll(); err != nil {
		g.rt.Logger.Warn("Could not load track", "err", err)
		g.musicError = "could not load track"
		g.session.Notify(game.SlotHit, "Could not load track", config.MessageLevel)
	}
	spectrum := g.deck.Spectrum()
	if wasPlaying && !g.deck.Playing() {
		g.session.ResetBounds()
	}
	return spectrum
}

var slotKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

func (g *Game) updateSettings() {
	for i, k := range slotKeys {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		g.musicError = ""
		if err := g.deck.Toggle(i + 1); err != nil {
			g.musicError = err.Error()
		}
		if g.deck.Slot() == 0 {
			g.session.ResetBounds()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.session.SetMode(g.session.Mode.Toggle())
		g.rt.Metrics.SessionStarted(g.session.Mode.Name)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.recordRun("restart")
		g.session.Restart()
		g.settingsFrom = screenStart
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch {
		case g.session.GameOver:
			g.screen = screenOver
		case g.settingsFrom == screenPlaying:
			g.start()
		default:
			g.screen = screenStart
		}
	}
}

func (g *Game) start() {
	if g.runStarted.IsZero() || g.runRecorded {
		g.runStarted = time.Now()
		g.runRecorded = false
	}
	g.session.Start()
	g.screen = screenPlaying
}

func (g *Game) openSettings() {
	g.session.Pause()
	g.settingsFrom = g.screen
	g.screen = screenSettings
}

func (g *Game) recordRun(reason string) {
	if g.runRecorded || g.runStarted.IsZero() {
		return
	}
	g.runRecorded = true
	run := telemetry.Run{
		Player:   g.username,
		Mode:     g.session.Mode.Name,
		Score:    g.session.Score,
		HP:       g.session.HP,
		Duration: time.Since(g.runStarted),
		Reason:   reason,
		At:       time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := g.rt.Runs.Record(ctx, run); err != nil {
			g.rt.Logger.Warn("Failed to record run", "err", err)
		}
	}()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(img *ebiten.Image) {
	img.Fill(background)
	g.surface.Target(img)
	g.renderer.Begin()
	g.session.Draw(g.renderer)

	w, h := g.surface.Size()
	g.drawHUD(w, h)
	switch g.screen {
	case screenStart:
		g.drawLines(img, w/2, h/2-60, textColor,
			"S P A C E B E A T",
			"",
			"WASD / Arrows  move",
			"SPACE          shoot",
			"Mouse          look",
			"ENTER          settings",
			"Q              quit",
			"",
			fmt.Sprintf("High Score: %d %s", g.session.HighScore, g.holder),
			"",
			"Press SPACE to start")
	case screenSettings:
		lines := []string{"SETTINGS", ""}
		for slot := 1; slot <= audio.FileSlot; slot++ {
			mark := " "
			if slot == g.deck.Slot() {
				mark = ">"
			}
			lines = append(lines, fmt.Sprintf("%s [%d] %s", mark, slot, g.deck.SlotName(slot)))
		}
		lines = append(lines, "", g.musicError, "",
			"[M] Mode: "+g.session.Mode.Name,
			"[R] Restart",
			"",
			"ENTER to close")
		g.drawLines(img, w/2, h/2-100, textColor, lines...)
	case screenOver:
		lines := []string{"GAME OVER", "", fmt.Sprintf("Score: %d", g.session.Score)}
		if g.session.NewHighScore {
			lines = append(lines, "New High Score!")
		}
		lines = append(lines, "", "Press SPACE to restart")
		g.drawLines(img, w/2, h/2-40, textColor, lines...)
	}
}

func (g *Game) drawHUD(w, h float64) {
	img := g.surface.img
	s := g.session
	g.drawText(img, fmt.Sprintf("Ship HP: %d", s.HP), 12, 20, textColor, false)
	g.drawText(img, fmt.Sprintf("Score: %d", s.Score), 12, 20+lineHeight, textColor, false)
	g.drawText(img, fmt.Sprintf("High Score: %d", s.HighScore), w-160, 20, textColor, false)
	g.drawText(img, fmt.Sprintf("Players: %d", g.rt.Server.GetSnapshot().Players), w-160, h-12, textColor, false)

	now := time.Now()
	messages := []struct {
		slot  game.Slot
		x, y  float64
		color color.Color
		mid   bool
	}{
		{game.SlotLevel, w / 2, 40, levelColor, true},
		{game.SlotHit, w / 2, h/2 - 80, alertColor, true},
		{game.SlotLoss, 120, 20, alertColor, false},
		{game.SlotGain, 120, 20 + lineHeight, gainColor, false},
	}
	for _, m := range messages {
		if msg, ok := s.Notes.Active(m.slot, now); ok {
			g.drawText(img, msg, m.x, m.y, m.color, m.mid)
		}
	}
}

func (g *Game) drawLines(img *ebiten.Image, x, y float64, clr color.Color, lines ...string) {
	for i, line := range lines {
		g.drawText(img, line, x, y+float64(i*lineHeight), clr, true)
	}
}

func (g *Game) drawText(img *ebiten.Image, s string, x, y float64, clr color.Color, centered bool) {
	if s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	if centered {
		op.PrimaryAlign = text.AlignCenter
	}
	text.Draw(img, s, g.face, op)
}

// Layout implements ebiten.Game. The scene is drawn at the window's size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
