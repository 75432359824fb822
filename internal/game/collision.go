package game

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/loop/config"
	"github.com/tomz197/spacebeat/internal/object"
	"github.com/tomz197/spacebeat/internal/physics"
)

// Damage sources, as reported to the Recorder.
const (
	SourceRock        = "rock"
	SourceDrone       = "drone"
	SourceDroneBullet = "drone_bullet"
	SourceEnemyShip   = "enemy_ship"
	SourceEnemyBullet = "enemy_bullet"
	SourceLaser       = "laser"
	SourceBounds      = "bounds"
)

const (
	hitText        = "Ship hit!"
	outOfRangeText = "Out of Range"
)

var (
	outOfRangePaint = draw.Solid(draw.HSL(0, 1, 0.5))
	idleBoxPaint    = draw.Hex("#ffffff")
	shipDebrisPaint = draw.Hex("#90ee90")
)

// moveShip applies the arrow keys inside the flight envelope. With music the
// envelope follows the bounds controller; without it the ship is held to the
// fixed play square.
func (s *Session) moveShip(c Controls, spectrum []byte, now time.Time) {
	pos := s.Ship.Position()

	if spectrum != nil {
		edge := s.Bounds.Update(spectrum, s.Box)
		if d := physics.PlanarLength(pos); d < edge {
			s.Ship.SetPosition(steer(pos, c, math.Inf(1)))
		} else {
			s.pullBack(pos, d, edge, now)
		}
		if s.Ship != nil {
			s.Equalizer.Update(s.Ship.Position(), spectrumLevels(spectrum))
		}
		return
	}

	s.Equalizer.Hide()
	pos = steer(pos, c, config.Bound)
	s.Ship.SetPosition(pos)
	if math.Abs(pos.X()) >= config.Bound || math.Abs(pos.Y()) >= config.Bound {
		s.pullBack(pos, physics.PlanarLength(pos), config.Bound, now)
		return
	}
	s.Box.Node.Paint = idleBoxPaint
}

// steer moves pos one step per held key, never past ±limit.
func steer(pos mgl64.Vec3, c Controls, limit float64) mgl64.Vec3 {
	if c.Left && pos[0] > -limit {
		pos[0] -= config.ShipStep
	}
	if c.Right && pos[0] < limit {
		pos[0] += config.ShipStep
	}
	if c.Up && pos[1] < limit {
		pos[1] += config.ShipStep
	}
	if c.Down && pos[1] > -limit {
		pos[1] -= config.ShipStep
	}
	return pos
}

// pullBack moves the ship back inside an envelope of the given edge and
// charges the out-of-range penalty.
func (s *Session) pullBack(pos mgl64.Vec3, dist, edge float64, now time.Time) {
	if dist > 0 {
		scale := (edge - 2) / dist
		pos[0] *= scale
		pos[1] *= scale
	}
	s.Ship.SetPosition(pos)
	s.Box.Node.Paint = outOfRangePaint
	s.damage(config.DamageOutOfBounds, SourceBounds, outOfRangeText, config.MessageShort, now)
}

// spectrumLevels folds the lower half of the spectrum into one level per
// equalizer bar.
func spectrumLevels(bins []byte) []float64 {
	levels := make([]float64, object.EqualizerBars)
	width := len(bins) / 2 / object.EqualizerBars
	if width == 0 {
		return levels
	}
	for i := range levels {
		levels[i] = mean(bins[i*width:(i+1)*width]) / 255
	}
	return levels
}

func (s *Session) stepRocks(now time.Time) {
	passZ := s.Camera.Position.Z() + config.RockPassMargin
	for _, r := range s.Rocks {
		r.Advance()
		if r.Position().Z() > passZ {
			r.Recycle(s.rng)
			continue
		}
		ship := s.Ship.Position()
		if !physics.Within(r.Position(), ship, r.Radius) {
			continue
		}
		object.SpawnFragments(ship, config.FragmentsPerHit, 6, 0.6, r.Node.Paint, s, s.rng)
		r.Recycle(s.rng)
		s.damage(config.DamageRock, SourceRock, hitText, config.MessageShort, now)
		if s.Ship == nil {
			return
		}
	}
}

func (s *Session) stepDrones(now time.Time) {
	s.DroneBullets = SteerHunters(s.Ship.Position(), s.Drones, s.DroneBullets, DroneParams, s.rng)
	s.DroneBullets = s.bulletHits(s.DroneBullets, config.DamageDroneBullet, SourceDroneBullet, now)
	s.meleeHits(s.Drones, config.DamageDroneMelee, SourceDrone, now)
}

func (s *Session) stepEnemyShips(now time.Time) {
	s.EnemyBullets = SteerHunters(s.Ship.Position(), s.EnemyShips, s.EnemyBullets, EnemyParams, s.rng)
	s.EnemyBullets = s.bulletHits(s.EnemyBullets, config.DamageEnemyBullet, SourceEnemyBullet, now)
	s.meleeHits(s.EnemyShips, config.DamageEnemyMelee, SourceEnemyShip, now)
}

// bulletHits removes every bullet touching the ship and charges its damage.
func (s *Session) bulletHits(bullets []*object.Bullet, dmg int, source string, now time.Time) []*object.Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		if s.Ship != nil && physics.Within(b.Position(), s.Ship.Position(), config.BulletHitRadius) {
			s.damage(dmg, source, hitText, config.MessageHitFlash, now)
			continue
		}
		kept = append(kept, b)
	}
	clear(bullets[len(kept):])
	return kept
}

// meleeHits recycles every hunter that rammed the ship.
func (s *Session) meleeHits(hunters []*object.Hunter, dmg int, source string, now time.Time) {
	for _, h := range hunters {
		if s.Ship == nil {
			return
		}
		if physics.Within(h.Position(), s.Ship.Position(), object.ShipHitRadius) {
			h.Recycle(s.rng)
			s.damage(dmg, source, hitText, config.MessageShort, now)
		}
	}
}

func (s *Session) stepUFOs(now time.Time) {
	ship := s.Ship.Position()
	SteerUFOs(ship, s.UFOs)

	if now.Before(s.laserReadyAt) {
		return
	}
	for _, u := range s.UFOs {
		beam := mgl64.Vec3{u.Position().X(), u.Position().Y(), ship.Z()}
		if physics.Within(ship, beam, config.LaserHitRadius) {
			s.laserReadyAt = now.Add(config.LaserCooldown)
			s.damage(config.DamageLaser, SourceLaser, hitText, config.MessageHitFlash, now)
			return
		}
	}
}

// stepShipBullets advances the player's bullets and scores their hits.
// Each bullet is removed at most once.
func (s *Session) stepShipBullets(now time.Time) {
	enemies := s.TierActive(2)
	kept := s.ShipBullets[:0]
	for _, b := range s.ShipBullets {
		b.Advance()
		if b.Position().Z() < config.ShipBulletMinZ {
			continue
		}
		if s.shoot(b, s.Drones, config.RewardDrone, now) {
			continue
		}
		if enemies && s.shoot(b, s.EnemyShips, config.RewardEnemyShip, now) {
			continue
		}
		kept = append(kept, b)
	}
	clear(s.ShipBullets[len(kept):])
	s.ShipBullets = kept
}

// shoot recycles the first hunter b hits and awards its reward.
func (s *Session) shoot(b *object.Bullet, hunters []*object.Hunter, reward int, now time.Time) bool {
	for _, h := range hunters {
		if physics.Within(b.Position(), h.Position(), config.BulletHitRadius) {
			h.Recycle(s.rng)
			s.award(reward, h.Kind.String(), now)
			return true
		}
	}
	return false
}

// damage subtracts dmg from HP, never below zero, and ends the game when HP
// runs out. The loss message shows what was actually taken. Hits after the
// game ended are ignored.
func (s *Session) damage(dmg int, source, text string, flash time.Duration, now time.Time) {
	if s.GameOver {
		return
	}
	removed := min(dmg, s.HP)
	s.HP -= removed
	s.Notes.Show(SlotLoss, fmt.Sprintf("-%d HP", removed), now, config.MessageShort)
	s.Notes.Show(SlotHit, text, now, flash)
	s.recorder.Damage(source, removed)
	if s.HP == 0 {
		s.end()
	}
}

// award adds reward to the score and persists a beaten high score.
func (s *Session) award(reward int, kind string, now time.Time) {
	s.Score += reward
	s.Notes.Show(SlotGain, fmt.Sprintf("+%d Points", reward), now, config.MessageShort)
	s.recorder.Kill(kind, reward)
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		if s.scores != nil {
			s.scores.SaveHighScore(s.Score)
		}
	}
}

func (s *Session) end() {
	if s.GameOver {
		return
	}
	s.GameOver = true
	s.NewHighScore = s.Score > 0 && s.Score >= s.HighScore
	object.SpawnFragments(s.Ship.Position(), config.FragmentsPerHit*3, 8, 1.2, shipDebrisPaint, s, s.rng)
	s.Ship = nil
	s.recorder.GameOver(s.Score)
}
