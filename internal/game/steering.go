package game

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/loop/config"
	"github.com/tomz197/spacebeat/internal/object"
	"github.com/tomz197/spacebeat/internal/physics"
)

// HunterParams sets how fast a group of hunters flies and how often it shoots.
type HunterParams struct {
	Velocity float64
	Cooldown float64 // frames
}

// Hunter groups
var (
	DroneParams = HunterParams{Velocity: config.DroneVelocity, Cooldown: config.DroneCooldown}
	EnemyParams = HunterParams{Velocity: config.EnemyVelocity, Cooldown: config.EnemyCooldown}
)

// SteerHunters moves every hunter one frame towards the ship while keeping
// them apart, fires from hunters whose cooldown ran out and advances the
// group's bullets. Bullets that strayed farther than HunterBulletRange from
// the ship are dropped. It returns the updated bullet list.
func SteerHunters(ship mgl64.Vec3, hunters []*object.Hunter, bullets []*object.Bullet, p HunterParams, rng *rand.Rand) []*object.Bullet {
	positions := make([]mgl64.Vec3, len(hunters))
	for i, h := range hunters {
		positions[i] = h.Position()
	}

	for i, h := range hunters {
		dir := physics.Normalize(ship.Sub(positions[i]))
		sep := physics.Separation(i, positions, config.SeparationDistance, config.SeparationStrength)
		dir = physics.Normalize(dir.Add(sep))

		speed := rng.Float64()*p.Velocity + config.HunterMinSpeed
		h.Move(dir.Mul(speed))
		positions[i] = h.Position()

		h.SpinShell()

		h.Cooldown--
		if h.Cooldown <= 0 {
			bullets = append(bullets, object.NewHunterBullet(h.Position(), dir))
			h.Cooldown = p.Cooldown + rng.Float64()*p.Cooldown
		}
	}

	return advanceBullets(ship, bullets)
}

// advanceBullets moves every bullet and drops the ones out of range, in place.
func advanceBullets(ship mgl64.Vec3, bullets []*object.Bullet) []*object.Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		b.Advance()
		if physics.DistanceSquared(b.Position(), ship) > config.HunterBulletRange*config.HunterBulletRange {
			continue
		}
		kept = append(kept, b)
	}
	clear(bullets[len(kept):])
	return kept
}

// SteerUFOs drifts the UFOs sideways after the ship on their own depth plane,
// adds a slow wander and keeps each laser attached to its UFO.
func SteerUFOs(ship mgl64.Vec3, ufos []*object.UFO) {
	positions := make([]mgl64.Vec3, len(ufos))
	for i, u := range ufos {
		positions[i] = u.Position()
	}

	for i, u := range ufos {
		pos := positions[i]
		target := mgl64.Vec3{ship.X(), ship.Y(), config.UFOPlaneZ}
		dir := physics.Normalize(target.Sub(mgl64.Vec3{pos.X(), pos.Y(), config.UFOPlaneZ}))
		sep := physics.Separation(i, positions, config.UFOSeparation, config.UFOSeparationFactor)

		u.Wander[0] += config.WanderStep
		u.Wander[1] += config.WanderStep
		wander := mgl64.Vec3{
			math.Sin(u.Wander[0]) * config.WanderAmplitude,
			math.Cos(u.Wander[1]) * config.WanderAmplitude,
			0,
		}

		dir = physics.Normalize(dir.Add(sep).Add(wander))
		u.Move(dir.Mul(config.UFOVelocity))
		positions[i] = u.Position()
		u.AlignLaser()
	}
}
