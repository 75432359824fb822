// Package game runs one player's simulation: the ship, its enemies, the
// collision and scoring rules, the audio-reactive bounds and the HUD messages.
package game

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/loop/config"
	"github.com/tomz197/spacebeat/internal/object"
	"github.com/tomz197/spacebeat/internal/scene"
)

// ScoreSink persists a new high score.
type ScoreSink interface {
	SaveHighScore(score int)
}

// Recorder counts gameplay events.
type Recorder interface {
	Damage(source string, amount int)
	Kill(kind string, reward int)
	GameOver(score int)
}

type nopRecorder struct{}

func (nopRecorder) Damage(string, int) {}
func (nopRecorder) Kill(string, int)   {}
func (nopRecorder) GameOver(int)       {}

// Controls is the player's intent for one frame.
type Controls struct {
	Left, Right, Up, Down bool
	Fire                  bool
	PointerY              float64 // -1 (top) .. 1 (bottom)
}

// Options configures a new session.
type Options struct {
	Mode      config.Mode
	Seed      int64
	HighScore int
	Scores    ScoreSink
	Recorder  Recorder
	Clock     func() time.Time
}

// Session owns every entity of one game and the rules that tie them together.
type Session struct {
	Mode config.Mode

	Ship      *object.Ship // nil once the game is over
	HP        int
	Score     int
	HighScore int
	Started   bool // false while on the start screen or in settings
	GameOver  bool
	// NewHighScore is set when the game ended at or above the best score.
	NewHighScore bool

	Rocks        []*object.Rock
	Drones       []*object.Hunter
	EnemyShips   []*object.Hunter
	UFOs         []*object.UFO
	DroneBullets []*object.Bullet
	EnemyBullets []*object.Bullet
	ShipBullets  []*object.Bullet
	Fragments    []object.Object

	Box       *object.BoundsBox
	Equalizer *object.Equalizer
	Backdrop  *scene.Node
	Camera    *scene.Camera
	Bounds    Bounds
	Notes     Notifier

	Level2Shown bool
	Level3Shown bool
	introShown  bool

	pointerY     float64
	laserReadyAt time.Time
	nextShot     time.Time

	rng      *rand.Rand
	now      func() time.Time
	scores   ScoreSink
	recorder Recorder
}

// NewSession builds a session with a fresh scene for opts.Mode.
func NewSession(opts Options) *Session {
	s := &Session{
		Mode:      opts.Mode,
		HP:        config.MaxHP,
		HighScore: opts.HighScore,
		Camera:    scene.NewCamera(config.CameraFOV),
		Bounds:    NewBounds(),
		rng:       rand.New(rand.NewSource(opts.Seed)),
		now:       opts.Clock,
		scores:    opts.Scores,
		recorder:  opts.Recorder,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	s.build()
	return s
}

// build replaces every entity with a new set for the current mode.
func (s *Session) build() {
	m := s.Mode
	s.releaseFragments()

	s.Ship = object.NewShip(m.Tier)

	s.Rocks = make([]*object.Rock, m.Rocks)
	for i := range s.Rocks {
		s.Rocks[i] = object.NewRock(m.Tier, m.Rock, s.rng)
	}
	s.Drones = make([]*object.Hunter, m.Drones)
	for i := range s.Drones {
		s.Drones[i] = object.NewDrone(m.Tier, s.rng)
	}
	s.EnemyShips = make([]*object.Hunter, m.EnemyShips)
	for i := range s.EnemyShips {
		s.EnemyShips[i] = object.NewEnemyShip(m.Tier, s.rng)
	}
	s.UFOs = make([]*object.UFO, m.UFOs)
	for i := range s.UFOs {
		s.UFOs[i] = object.NewUFO(m.Tier, s.rng)
	}
	s.DroneBullets = nil
	s.EnemyBullets = nil
	s.ShipBullets = nil

	s.Box = object.NewBoundsBox(config.Bound)
	s.Equalizer = object.NewEqualizer()
	s.Backdrop = nil
	if m.Backdrop {
		s.Backdrop = object.NewBackdrop(s.rng)
	}
	s.followShip()
}

// SetMode switches to m and rebuilds the scene. HP and score carry over.
func (s *Session) SetMode(m config.Mode) {
	s.Mode = m
	gameOver := s.GameOver
	s.build()
	if gameOver {
		s.Ship = nil
	}
}

// Restart begins a new game in the current mode. The high score is kept.
func (s *Session) Restart() {
	s.HP = config.MaxHP
	s.Score = 0
	s.GameOver = false
	s.NewHighScore = false
	s.Level2Shown = false
	s.Level3Shown = false
	s.introShown = false
	s.Notes.Clear()
	s.laserReadyAt = time.Time{}
	s.nextShot = time.Time{}
	s.build()
}

// Start resumes play. The first start of a game shows the level 1 banner.
func (s *Session) Start() {
	if !s.introShown {
		s.introShown = true
		s.Notes.Show(SlotLevel, "Level 1", s.now(), config.MessageIntro)
	}
	s.Started = true
}

// Pause freezes the simulation until the next Start.
func (s *Session) Pause() {
	s.Started = false
}

// Notify shows text in slot for d.
func (s *Session) Notify(slot Slot, text string, d time.Duration) {
	s.Notes.Show(slot, text, s.now(), d)
}

// Fire shoots from the ship unless the fire-rate limiter holds it back.
func (s *Session) Fire() bool {
	if !s.Started || s.Ship == nil {
		return false
	}
	now := s.now()
	if now.Before(s.nextShot) {
		return false
	}
	s.ShipBullets = append(s.ShipBullets, object.NewShipBullet(s.Ship.Position()))
	s.nextShot = now.Add(config.FireInterval)
	return true
}

// Spawn implements object.Spawner.
func (s *Session) Spawn(obj object.Object) {
	s.Fragments = append(s.Fragments, obj)
}

// ResetBounds restores the idle bounds box after music is switched off.
func (s *Session) ResetBounds() {
	s.Box.Reset()
	s.Equalizer.Hide()
}

// TierActive reports whether enemy ships (2) or UFOs (3) are in play.
func (s *Session) TierActive(level int) bool {
	switch level {
	case 2:
		return s.Score >= config.Level2Score
	case 3:
		return s.Score >= config.Level3Score
	}
	return true
}

// Step advances the game by one frame. spectrum holds the analyser bins of
// the playing track, or nil when no track is ready.
func (s *Session) Step(c Controls, spectrum []byte, dt time.Duration) {
	s.updateFragments(dt)
	if !s.Started || s.Ship == nil {
		return
	}
	now := s.now()
	s.pointerY = c.PointerY

	s.moveShip(c, spectrum, now)
	if c.Fire {
		s.Fire()
	}
	s.followShip()
	if s.Ship == nil {
		return
	}

	s.stepRocks(now)
	if s.Ship == nil {
		return
	}

	s.stepDrones(now)
	if s.Ship == nil {
		return
	}

	if s.TierActive(2) {
		if !s.Level2Shown {
			s.Level2Shown = true
			s.Notes.Show(SlotLevel, "Level 2", now, config.MessageLevel)
		}
		s.stepEnemyShips(now)
		if s.Ship == nil {
			return
		}
	}

	if s.TierActive(3) {
		if !s.Level3Shown {
			s.Level3Shown = true
			s.Notes.Show(SlotLevel, "Level 3", now, config.MessageLevel)
		}
		s.stepUFOs(now)
		if s.Ship == nil {
			return
		}
	}

	s.stepShipBullets(now)
}

// followShip puts the camera behind the ship, raised by the pointer offset.
func (s *Session) followShip() {
	if s.Ship == nil {
		return
	}
	p := s.Ship.Position()
	s.Camera.Position = mgl64.Vec3{p.X(), p.Y() + s.pointerY*config.PointerSensitivity, p.Z() + config.CameraDistance}
	s.Camera.Target = p
}

func (s *Session) updateFragments(dt time.Duration) {
	ctx := object.UpdateContext{Delta: dt, Spawner: s}
	kept := s.Fragments[:0]
	for _, f := range s.Fragments {
		remove, err := f.Update(ctx)
		if remove || err != nil {
			object.ReleaseObject(f)
			continue
		}
		kept = append(kept, f)
	}
	clear(s.Fragments[len(kept):])
	s.Fragments = kept
}

func (s *Session) releaseFragments() {
	for _, f := range s.Fragments {
		object.ReleaseObject(f)
	}
	s.Fragments = nil
}

// Draw submits the whole scene to r. Lasers only show once UFOs are in play.
func (s *Session) Draw(r *scene.Renderer) {
	if s.Backdrop != nil {
		r.Draw(s.Backdrop)
	}
	r.Draw(s.Box.Node)
	for _, rock := range s.Rocks {
		r.Draw(rock.Node)
	}
	for _, d := range s.Drones {
		r.Draw(d.Node)
	}
	for _, e := range s.EnemyShips {
		r.Draw(e.Node)
	}
	lasers := s.TierActive(3)
	for _, u := range s.UFOs {
		r.Draw(u.Node)
		if lasers {
			r.Draw(u.Laser)
		}
	}
	for _, list := range [][]*object.Bullet{s.DroneBullets, s.EnemyBullets, s.ShipBullets} {
		for _, b := range list {
			r.Draw(b.Node)
		}
	}
	ctx := object.DrawContext{Renderer: r}
	for _, f := range s.Fragments {
		_ = f.Draw(ctx)
	}
	if s.Ship != nil {
		r.Draw(s.Ship.Node)
		r.Draw(s.Equalizer.Node)
	}
}
