package game

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/spacebeat/internal/loop/config"
	"github.com/tomz197/spacebeat/internal/object"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type savedScores struct {
	saved []int
}

func (s *savedScores) SaveHighScore(score int) { s.saved = append(s.saved, score) }

type countingRecorder struct {
	damage map[string]int
	kills  map[string]int
	over   int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{damage: map[string]int{}, kills: map[string]int{}}
}

func (r *countingRecorder) Damage(source string, amount int) { r.damage[source] += amount }
func (r *countingRecorder) Kill(kind string, reward int)     { r.kills[kind] += reward }
func (r *countingRecorder) GameOver(int)                     { r.over++ }

// emptyMode is the prototype mode with no entities; tests add what they need.
func emptyMode() config.Mode {
	m := config.Prototype
	m.Rocks, m.Drones, m.EnemyShips, m.UFOs = 0, 0, 0, 0
	return m
}

func newTestSession(t *testing.T, m config.Mode) (*Session, *fakeClock, *savedScores) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1000, 0)}
	scores := &savedScores{}
	s := NewSession(Options{Mode: m, Seed: 7, Scores: scores, Clock: clock.Now})
	s.Started = true
	return s, clock, scores
}

func TestDamage_ClampsAtZeroAndEndsOnce(t *testing.T) {
	rec := newCountingRecorder()
	s := NewSession(Options{Mode: emptyMode(), Recorder: rec})
	s.HP = 3

	s.damage(config.DamageRock, SourceRock, hitText, config.MessageShort, time.Now())
	assert.Equal(t, 0, s.HP)
	assert.True(t, s.GameOver)
	assert.Nil(t, s.Ship)

	s.damage(config.DamageRock, SourceRock, hitText, config.MessageShort, time.Now())
	assert.Equal(t, 0, s.HP)
	assert.Equal(t, 1, rec.over)
	assert.Equal(t, 3, rec.damage[SourceRock], "only the HP actually lost is recorded")
}

func TestDamage_LossMessageShowsHPActuallyLost(t *testing.T) {
	s, clock, _ := newTestSession(t, emptyMode())
	s.HP = 5

	s.damage(config.DamageEnemyMelee, SourceEnemyShip, hitText, config.MessageShort, clock.Now())

	assert.Equal(t, 0, s.HP)
	loss, ok := s.Notes.Active(SlotLoss, clock.Now())
	require.True(t, ok)
	assert.Equal(t, "-5 HP", loss)
}

func TestDamage_ShowsLossAndHitMessages(t *testing.T) {
	s, clock, _ := newTestSession(t, emptyMode())
	s.damage(config.DamageEnemyBullet, SourceEnemyBullet, hitText, config.MessageHitFlash, clock.Now())

	assert.Equal(t, config.MaxHP-config.DamageEnemyBullet, s.HP)
	loss, ok := s.Notes.Active(SlotLoss, clock.Now())
	require.True(t, ok)
	assert.Equal(t, "-15 HP", loss)

	clock.Advance(config.MessageHitFlash)
	_, ok = s.Notes.Active(SlotHit, clock.Now())
	assert.False(t, ok, "bullet hit flash is short")
	_, ok = s.Notes.Active(SlotLoss, clock.Now())
	assert.True(t, ok)
}

func TestAward_HighScoreOnlyWhenStrictlyExceeded(t *testing.T) {
	s, clock, scores := newTestSession(t, emptyMode())
	s.HighScore = 20

	s.award(10, "drone", clock.Now())
	s.award(10, "drone", clock.Now())
	assert.Empty(t, scores.saved)
	assert.Equal(t, 20, s.HighScore)

	s.award(10, "drone", clock.Now())
	assert.Equal(t, []int{30}, scores.saved)
	assert.Equal(t, 30, s.HighScore)
}

func TestStep_RockHitsShip(t *testing.T) {
	m := emptyMode()
	m.Rocks = 1
	s, _, _ := newTestSession(t, m)

	rock := s.Rocks[0]
	rock.Radius = 1
	rock.Speed = 0
	rock.SetPosition(s.Ship.Position().Add(mgl64.Vec3{0.5, 0, 0}))

	s.Step(Controls{}, nil, config.ClientTargetFrameTime)

	assert.Equal(t, 90, s.HP)
	p := rock.Position()
	assert.Equal(t, object.RecycleZ, p.Z())
	assert.GreaterOrEqual(t, p.X(), -object.RecycleRange)
	assert.Less(t, p.X(), object.RecycleRange)
	assert.GreaterOrEqual(t, p.Y(), -object.RecycleRange)
	assert.Less(t, p.Y(), object.RecycleRange)
	assert.NotEmpty(t, s.Fragments, "impact throws fragments")
}

func TestStep_RockPastCameraIsRecycled(t *testing.T) {
	m := emptyMode()
	m.Rocks = 1
	s, _, _ := newTestSession(t, m)

	rock := s.Rocks[0]
	rock.SetPosition(mgl64.Vec3{20, 20, s.Camera.Position.Z() + config.RockPassMargin})
	s.Step(Controls{}, nil, config.ClientTargetFrameTime)

	assert.Equal(t, object.RecycleZ, rock.Position().Z())
	assert.Equal(t, config.MaxHP, s.HP)
}

func TestStep_DroneKillCrossesLevel2(t *testing.T) {
	m := emptyMode()
	m.Drones = 1
	s, clock, scores := newTestSession(t, m)
	s.Score = 95
	s.HighScore = 200

	ship := s.Ship.Position()
	drone := s.Drones[0]
	drone.Cooldown = 1000
	drone.SetPosition(ship.Add(mgl64.Vec3{0, 0, -20}))
	s.ShipBullets = append(s.ShipBullets, object.NewShipBullet(ship.Add(mgl64.Vec3{0, 0, -19.2})))

	s.Step(Controls{}, nil, config.ClientTargetFrameTime)

	assert.Equal(t, 105, s.Score)
	assert.Empty(t, s.ShipBullets)
	assert.Equal(t, object.RecycleZ, drone.Position().Z())
	assert.False(t, s.Level2Shown, "level is announced on the next frame")
	assert.Empty(t, scores.saved)

	s.Step(Controls{}, nil, config.ClientTargetFrameTime)
	assert.True(t, s.Level2Shown)
	assert.True(t, s.TierActive(2))
	msg, ok := s.Notes.Active(SlotLevel, clock.Now())
	require.True(t, ok)
	assert.Equal(t, "Level 2", msg)

	// Announced once.
	s.Notes.Clear()
	s.Step(Controls{}, nil, config.ClientTargetFrameTime)
	_, ok = s.Notes.Active(SlotLevel, clock.Now())
	assert.False(t, ok)
}

func TestStep_EnemyShipsIgnoredBelowLevel2(t *testing.T) {
	m := emptyMode()
	m.EnemyShips = 1
	s, _, _ := newTestSession(t, m)

	enemy := s.EnemyShips[0]
	enemy.SetPosition(s.Ship.Position())
	start := enemy.Position()
	s.Step(Controls{}, nil, config.ClientTargetFrameTime)

	assert.Equal(t, config.MaxHP, s.HP)
	assert.Equal(t, start, enemy.Position())
	assert.Empty(t, s.EnemyBullets)
}

func TestStep_EnemyShipMeleeAtLevel2(t *testing.T) {
	m := emptyMode()
	m.EnemyShips = 1
	s, _, _ := newTestSession(t, m)
	s.Score = config.Level2Score

	enemy := s.EnemyShips[0]
	enemy.Cooldown = 1000
	enemy.SetPosition(s.Ship.Position())
	s.Step(Controls{}, nil, config.ClientTargetFrameTime)

	assert.Equal(t, config.MaxHP-config.DamageEnemyMelee, s.HP)
	assert.Equal(t, object.RecycleZ, enemy.Position().Z())
}

func TestStep_BulletCollectionsShrinkByRemovedCount(t *testing.T) {
	s, _, _ := newTestSession(t, emptyMode())
	ship := s.Ship.Position()
	forward := mgl64.Vec3{0, 0, 1}

	s.DroneBullets = []*object.Bullet{
		object.NewHunterBullet(ship.Add(mgl64.Vec3{0, 0, -0.5}), forward), // hits
		object.NewHunterBullet(ship.Add(mgl64.Vec3{0, 0, -100}), forward), // in flight
		object.NewHunterBullet(ship.Add(mgl64.Vec3{0, 0, 250}), forward),  // out of range
	}
	s.ShipBullets = []*object.Bullet{
		object.NewShipBullet(mgl64.Vec3{0, 0, -189.8}), // past the far plane
		object.NewShipBullet(mgl64.Vec3{0, 0, -10}),
	}

	s.Step(Controls{}, nil, config.ClientTargetFrameTime)

	assert.Len(t, s.DroneBullets, 1)
	assert.Len(t, s.ShipBullets, 1)
	assert.Equal(t, config.MaxHP-config.DamageDroneBullet, s.HP)
}

func TestStep_LaserCooldown(t *testing.T) {
	m := emptyMode()
	m.UFOs = 1
	s, clock, _ := newTestSession(t, m)
	s.Score = config.Level3Score

	ship := s.Ship.Position()
	s.UFOs[0].SetPosition(mgl64.Vec3{ship.X(), ship.Y(), config.UFOPlaneZ})

	s.Step(Controls{}, nil, config.ClientTargetFrameTime)
	assert.Equal(t, 95, s.HP)
	assert.True(t, s.Level3Shown)

	clock.Advance(100 * time.Millisecond)
	s.Step(Controls{}, nil, config.ClientTargetFrameTime)
	assert.Equal(t, 95, s.HP, "laser is cooling down")

	clock.Advance(config.LaserCooldown)
	s.Step(Controls{}, nil, config.ClientTargetFrameTime)
	assert.Equal(t, 90, s.HP)
}

func TestStep_OutOfRangeWithoutMusic(t *testing.T) {
	s, _, _ := newTestSession(t, emptyMode())
	s.Ship.SetPosition(mgl64.Vec3{config.Bound, 0, 0})

	s.Step(Controls{Right: true}, nil, config.ClientTargetFrameTime)

	assert.Equal(t, config.MaxHP-config.DamageOutOfBounds, s.HP)
	assert.InDelta(t, config.Bound-2, s.Ship.Position().X(), 1e-9)
	assert.Equal(t, outOfRangePaint, s.Box.Node.Paint)
}

func TestStep_MovesWithinSquare(t *testing.T) {
	s, _, _ := newTestSession(t, emptyMode())
	start := s.Ship.Position()

	s.Step(Controls{Left: true, Up: true}, nil, config.ClientTargetFrameTime)

	p := s.Ship.Position()
	assert.InDelta(t, start.X()-config.ShipStep, p.X(), 1e-9)
	assert.InDelta(t, start.Y()+config.ShipStep, p.Y(), 1e-9)
	assert.Equal(t, idleBoxPaint, s.Box.Node.Paint)
	assert.Equal(t, p.Z()+config.CameraDistance, s.Camera.Position.Z())
}

func TestStep_MusicDrivesBoundsAndEqualizer(t *testing.T) {
	s, _, _ := newTestSession(t, emptyMode())
	bins := make([]byte, 256)
	for i := range bins {
		bins[i] = 255
	}

	s.Step(Controls{}, bins, config.ClientTargetFrameTime)

	assert.False(t, s.Equalizer.Node.Hidden)
	assert.Less(t, s.Bounds.Shrink, 1.0)
	assert.Equal(t, config.MaxHP, s.HP, "ship starts well inside the envelope")
}

func TestStep_PausedDoesNothing(t *testing.T) {
	m := emptyMode()
	m.Rocks = 1
	s, _, _ := newTestSession(t, m)
	s.Started = false
	before := s.Rocks[0].Position()

	s.Step(Controls{Left: true}, nil, config.ClientTargetFrameTime)

	assert.Equal(t, before, s.Rocks[0].Position())
	assert.Equal(t, object.ShipStart, s.Ship.Position())
}

func TestFire_RateLimited(t *testing.T) {
	s, clock, _ := newTestSession(t, emptyMode())

	assert.True(t, s.Fire())
	assert.False(t, s.Fire())
	clock.Advance(config.FireInterval)
	assert.True(t, s.Fire())
	assert.Len(t, s.ShipBullets, 2)
}

func TestFire_NotAfterGameOver(t *testing.T) {
	s, _, _ := newTestSession(t, emptyMode())
	s.HP = 1
	s.damage(config.DamageLaser, SourceLaser, hitText, config.MessageHitFlash, time.Now())

	assert.False(t, s.Fire())
	assert.NotPanics(t, func() { s.Step(Controls{Fire: true}, nil, config.ClientTargetFrameTime) })
}

func TestSetMode_KeepsHPAndScore(t *testing.T) {
	s, _, _ := newTestSession(t, config.Prototype)
	s.HP = 40
	s.Score = 120

	s.SetMode(config.Full)

	assert.Equal(t, 40, s.HP)
	assert.Equal(t, 120, s.Score)
	assert.Equal(t, object.TierFull, s.Mode.Tier)
	assert.Len(t, s.Rocks, config.Full.Rocks)
	assert.NotNil(t, s.Backdrop)
}

func TestRestart_ResetsGame(t *testing.T) {
	s, _, _ := newTestSession(t, emptyMode())
	s.Score = 150
	s.HighScore = 150
	s.HP = 1
	s.damage(config.DamageRock, SourceRock, hitText, config.MessageShort, time.Now())
	require.True(t, s.GameOver)
	assert.True(t, s.NewHighScore)

	s.Restart()

	assert.False(t, s.GameOver)
	assert.Equal(t, config.MaxHP, s.HP)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 150, s.HighScore)
	assert.NotNil(t, s.Ship)
}

func TestSteerHunters_FiresAndResetsCooldown(t *testing.T) {
	s, _, _ := newTestSession(t, emptyMode())
	h := object.NewDrone(object.TierPrototype, s.rng)
	h.SetPosition(mgl64.Vec3{0, 0, -50})
	h.Cooldown = 1

	bullets := SteerHunters(mgl64.Vec3{}, []*object.Hunter{h}, nil, DroneParams, s.rng)

	require.Len(t, bullets, 1)
	assert.InDelta(t, 1, bullets[0].Dir.Len(), 1e-9)
	assert.GreaterOrEqual(t, h.Cooldown, DroneParams.Cooldown)
	assert.Less(t, h.Cooldown, 2*DroneParams.Cooldown)
	assert.Greater(t, h.Position().Z(), -50.0, "drone closes in")
}

func TestSteerHunters_NoHuntersStillAdvancesBullets(t *testing.T) {
	s, _, _ := newTestSession(t, emptyMode())
	b := object.NewHunterBullet(mgl64.Vec3{0, 0, -10}, mgl64.Vec3{0, 0, 1})

	bullets := SteerHunters(mgl64.Vec3{}, nil, []*object.Bullet{b}, EnemyParams, s.rng)

	require.Len(t, bullets, 1)
	assert.Equal(t, -9.0, bullets[0].Position().Z())
}

func TestSteerUFOs_LateralPursuit(t *testing.T) {
	s, _, _ := newTestSession(t, emptyMode())
	u := object.NewUFO(object.TierPrototype, s.rng)
	u.SetPosition(mgl64.Vec3{10, 0, config.UFOPlaneZ})
	u.Wander = [2]float64{}

	SteerUFOs(mgl64.Vec3{0, 0, 0}, []*object.UFO{u})

	p := u.Position()
	assert.Equal(t, config.UFOPlaneZ, p.Z())
	assert.Less(t, p.X(), 10.0)
	assert.InDelta(t, config.UFOVelocity, math.Hypot(p.X()-10, p.Y()), 1e-9)
	assert.Equal(t, p.Add(mgl64.Vec3{0, 0, object.LaserOffset}), u.Laser.Position)
}

func TestBounds_ShrinkConvergesGeometrically(t *testing.T) {
	box := object.NewBoundsBox(config.Bound)
	b := Bounds{Shrink: 0.3}
	silence := make([]byte, 256)

	for n := 1; n <= 40; n++ {
		b.Update(silence, box)
		assert.InDelta(t, 1-0.7*math.Pow(boundsKeep, float64(n)), b.Shrink, 1e-9)
	}
	assert.InDelta(t, 1, b.Shrink, 0.01)
}

func TestBounds_RadiusFloorAndEdge(t *testing.T) {
	box := object.NewBoundsBox(config.Bound)
	b := NewBounds()
	loud := make([]byte, 256)
	for i := range loud {
		loud[i] = 255
	}

	edge := b.Update(loud, box)

	assert.Equal(t, minRadius, b.Radius)
	assert.InDelta(t, math.Sqrt2*minRadius-2, edge, 1e-9)
	assert.InDelta(t, 1.0, box.Node.Paint.Alpha, 1e-9)
	assert.Equal(t, b.Shrink, box.Node.Scale.X())
	assert.Equal(t, 1.0, box.Node.Scale.Z())
}

func TestBounds_EmptySpectrum(t *testing.T) {
	box := object.NewBoundsBox(config.Bound)
	b := NewBounds()
	assert.NotPanics(t, func() { b.Update(nil, box) })
	assert.InDelta(t, 1, b.Shrink, 1e-9)
}

func TestNotifier_NewerMessageWins(t *testing.T) {
	var n Notifier
	now := time.Unix(0, 0)

	n.Show(SlotHit, "Ship hit!", now, 500*time.Millisecond)
	n.Show(SlotHit, "Out of Range", now.Add(400*time.Millisecond), 500*time.Millisecond)

	msg, ok := n.Active(SlotHit, now.Add(600*time.Millisecond))
	require.True(t, ok, "the first deadline must not hide the second message")
	assert.Equal(t, "Out of Range", msg)

	_, ok = n.Active(SlotHit, now.Add(900*time.Millisecond))
	assert.False(t, ok)
}

func TestStart_ShowsIntroOncePerGame(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := NewSession(Options{Mode: emptyMode(), Clock: clock.Now})

	s.Start()
	require.True(t, s.Started)
	text, ok := s.Notes.Active(SlotLevel, clock.Now())
	require.True(t, ok)
	assert.Equal(t, "Level 1", text)

	s.Pause()
	assert.False(t, s.Started)
	clock.Advance(config.MessageIntro)
	s.Start()
	_, ok = s.Notes.Active(SlotLevel, clock.Now())
	assert.False(t, ok, "resuming does not repeat the banner")

	s.Restart()
	s.Start()
	_, ok = s.Notes.Active(SlotLevel, clock.Now())
	assert.True(t, ok)
}
