package client

import (
	"time"

	"github.com/tomz197/spacebeat/internal/input"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateSettings                  // Music and mode menu, simulation paused
	GameStateOver                      // Ship destroyed, show restart prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection UI state. The game itself lives in the
// client's game.Session.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	prevGameState GameState
	settingsFrom  GameState // state to return to when settings close
	PointerY      float64   // -1 (top) .. 1 (bottom)
	Running       bool
	delta         time.Duration
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool
	wasInactive   bool
	runStarted    time.Time
	runRecorded   bool
	musicError    string
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
	}
}
