// Package config centralizes all tunable game parameters.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/spacebeat/internal/object"
)

// Hit points
const (
	MaxHP = 100
)

// Damage per hit
const (
	DamageRock        = 10
	DamageDroneMelee  = 20
	DamageEnemyMelee  = 25
	DamageDroneBullet = 5
	DamageEnemyBullet = 15
	DamageLaser       = 5
	DamageOutOfBounds = 5
)

// Scoring and difficulty
const (
	RewardDrone     = 10
	RewardEnemyShip = 50
	Level2Score     = 100 // enemy ships join
	Level3Score     = 300 // UFOs join
)

// Ship and camera
const (
	Bound              = 25.0 // half-width of the play square
	ShipStep           = 0.2  // movement per frame while a key is held
	CameraDistance     = 10.0
	CameraFOV          = 75.0
	PointerSensitivity = 7.0
	FireInterval       = 200 * time.Millisecond
)

// Steering
const (
	DroneVelocity       = 0.2
	DroneCooldown       = 50
	EnemyVelocity       = 0.6
	EnemyCooldown       = 20
	HunterMinSpeed      = 0.12
	SeparationDistance  = 5.0
	SeparationStrength  = 0.1
	UFOVelocity         = 0.07
	UFOSeparation       = 7.0
	UFOSeparationFactor = 4.0
	UFOPlaneZ           = -250.0
	WanderStep          = 0.01
	WanderAmplitude     = 0.4
)

// Collisions and pruning
const (
	BulletHitRadius   = 1.0
	LaserHitRadius    = 1.2
	LaserCooldown     = 500 * time.Millisecond
	HunterBulletRange = 200.0
	ShipBulletMinZ    = -190.0
	RockPassMargin    = 2.0 // rocks past camera.z + margin are recycled
	FragmentsPerHit   = 12
)

// Message display times
const (
	MessageShort    = 500 * time.Millisecond
	MessageHitFlash = 150 * time.Millisecond
	MessageLevel    = 3 * time.Second
	MessageIntro    = 6 * time.Second
)

// Mode selects entity counts, rock shapes and the visual tier.
type Mode struct {
	Name       string
	Tier       object.Tier
	Rocks      int
	Drones     int
	EnemyShips int
	UFOs       int
	Rock       object.RockShape
	Backdrop   bool
}

// Game modes
var (
	Prototype = Mode{
		Name:       "prototype",
		Tier:       object.TierPrototype,
		Rocks:      70,
		Drones:     7,
		EnemyShips: 3,
		UFOs:       2,
		Rock:       object.RockShape{MinRadius: 0.2, RadiusSpan: 2, MinSpeed: 0.05, SpeedSpan: 0.2},
	}
	Full = Mode{
		Name:       "full",
		Tier:       object.TierFull,
		Rocks:      70,
		Drones:     7,
		EnemyShips: 3,
		UFOs:       2,
		Rock:       object.RockShape{MinRadius: 0.5, RadiusSpan: 2, MinSpeed: 0.05, SpeedSpan: 0.2},
		Backdrop:   true,
	}
)

// ModeByName looks a mode up by its name, case-insensitively.
func ModeByName(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Prototype.Name, "":
		return Prototype, nil
	case Full.Name:
		return Full, nil
	}
	return Mode{}, fmt.Errorf("unknown game mode %q", name)
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m.Tier == object.TierFull {
		return Prototype
	}
	return Full
}

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 200
	MaxTermHeight         = 60
)

// Server housekeeping
const (
	ServerTickTime = time.Second
)
