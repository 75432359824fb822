package client

import (
	"fmt"
	"time"

	"github.com/tomz197/spacebeat/internal/audio"
	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/game"
	"github.com/tomz197/spacebeat/internal/loop/config"
	"github.com/tomz197/spacebeat/internal/loop/server"
	"github.com/tomz197/spacebeat/internal/object"
)

// ASCII art title (figlet "small" font)
var titleArt = []string{
	` ___   ___     _      ___   ___   ___   ___     _     _____ `,
	`/ __| | _ \   /_\    / __| | __| | _ ) | __|   /_\   |_   _|`,
	`\__ \ |  _/  / _ \  | (__  | _|  | _ \ | _|   / _ \    | |  `,
	`|___/ |_|   /_/ \_\  \___| |___| |___/ |___| /_/ \_\   |_|  `,
	``,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	``,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.Clear()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.renderer.Begin()
	c.session.Draw(c.renderer)

	c.chunkWriter.RenderCanvas()
	c.drawUI(c.server.GetSnapshot())

	return c.chunkWriter.Flush()
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snapshot *server.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
		c.drawMessages(termWidth, termHeight)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateSettings:
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
		c.drawSettingsScreen(centerX, centerY)
	case GameStateOver:
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
		c.drawOverScreen(centerX, centerY)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	object.Centered(centerX, centerY-2, "INACTIVITY WARNING", draw.ColorYellow).Draw(cw)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	object.Centered(centerX, centerY, msg, "").Draw(cw)
	object.Centered(centerX, centerY+2, "Press any key to continue", "").Draw(cw)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	cw := c.chunkWriter
	titleWidth := artWidth(titleArt)
	titleStartY := centerY - 8
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	object.Centered(centerX, titleStartY+len(titleArt)+1, "~ Fly to the beat ~", "").Draw(cw)

	controlsY := titleStartY + len(titleArt) + 3
	object.Centered(centerX, controlsY, "Controls", "").Draw(cw)
	controlLines := []string{
		"WASD / Arrows  . . . Move",
		"SPACE  . . . . . . . Shoot",
		"Mouse  . . . . . . . Look",
		"ENTER  . . . . . Settings",
		"Q  . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		object.Centered(centerX, controlsY+1+i, line, "").Draw(cw)
	}

	if c.session.HighScore > 0 {
		best := fmt.Sprintf("High Score: %d", c.session.HighScore)
		if c.holder != "" {
			best += " by " + c.holder
		}
		object.Centered(centerX, controlsY+len(controlLines)+2, best, draw.ColorBrightCyan).Draw(cw)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		object.Centered(centerX, controlsY+len(controlLines)+4, ">>  Press SPACE to Start  <<", "").Draw(cw)
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snapshot *server.Snapshot) {
	cw := c.chunkWriter
	s := c.session

	hpColor := draw.ColorGreen
	if s.HP <= config.MaxHP/4 {
		hpColor = draw.ColorRed
	}
	object.Text{X: 2, Y: 1, Value: fmt.Sprintf("Ship HP: %-3d", s.HP), Color: hpColor}.Draw(cw)
	cw.WriteAt(2, 2, fmt.Sprintf("Score: %-8d", s.Score))

	highText := fmt.Sprintf("High Score: %-8d", s.HighScore)
	cw.WriteAt(termWidth-len(highText)-1, 1, highText)

	playersText := fmt.Sprintf("Players: %-4d", snapshot.Players)
	cw.WriteAt(termWidth-len(playersText)-1, termHeight, playersText)

	music := "off"
	switch {
	case c.deck.Loading():
		music = "loading " + c.deck.SlotName(c.deck.Slot())
	case c.deck.Playing():
		music = c.deck.SlotName(c.deck.Slot())
	}
	cw.WriteAt(2, termHeight, fmt.Sprintf("%-9s Music: %-24.24s", s.Mode.Name, music))
}

// drawMessages draws the timed HUD messages. Their cells are marked dirty so
// the canvas paints over them once they expire.
func (c *Client) drawMessages(termWidth, termHeight int) {
	now := time.Now()
	centerX := termWidth / 2
	labels := []struct {
		slot  game.Slot
		x, y  int
		color string
	}{
		{game.SlotLevel, centerX, 3, draw.ColorYellow},
		{game.SlotHit, centerX, termHeight/2 - 4, draw.ColorRed},
		{game.SlotLoss, 16, 1, draw.ColorRed},
		{game.SlotGain, 18, 2, draw.ColorGreen},
	}
	for _, l := range labels {
		text, ok := c.session.Notes.Active(l.slot, now)
		if !ok {
			continue
		}
		label := object.Text{X: l.x, Y: l.y, Value: text, Color: l.color}
		if l.x == centerX {
			label = object.Centered(l.x, l.y, text, l.color)
		}
		label.Draw(c.chunkWriter)
		c.canvas.MarkTextDirty(label.X, label.Y, label.Width())
	}
}

// drawSettingsScreen draws the music and mode menu.
func (c *Client) drawSettingsScreen(centerX, centerY int) {
	cw := c.chunkWriter
	top := centerY - 7
	object.Centered(centerX, top, "SETTINGS", draw.ColorBrightCyan).Draw(cw)
	object.Centered(centerX, top+2, "Music", "").Draw(cw)

	for slot := 1; slot <= audio.FileSlot; slot++ {
		status := "        "
		if slot == c.deck.Slot() {
			status = "playing "
			if c.deck.Loading() {
				status = "loading "
			}
		}
		line := fmt.Sprintf("[%d] %-20.20s %s", slot, c.deck.SlotName(slot), status)
		object.Centered(centerX, top+3+slot, line, "").Draw(cw)
	}

	y := top + 5 + audio.FileSlot
	if c.state.musicError != "" {
		object.Centered(centerX, y, c.state.musicError, draw.ColorRed).Draw(cw)
	}
	object.Centered(centerX, y+2, fmt.Sprintf("[M] Mode: %-9s", c.session.Mode.Name), "").Draw(cw)
	object.Centered(centerX, y+3, "[R] Restart       ", "").Draw(cw)
	object.Centered(centerX, y+5, "Press ENTER to close", "").Draw(cw)
}

// drawOverScreen draws the game over screen.
func (c *Client) drawOverScreen(centerX, centerY int) {
	cw := c.chunkWriter
	titleWidth := artWidth(gameOverArt)
	titleStartY := centerY - 6
	for i, line := range gameOverArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	y := titleStartY + len(gameOverArt) + 1
	object.Centered(centerX, y, fmt.Sprintf("Score: %d", c.session.Score), "").Draw(cw)
	if c.session.NewHighScore {
		object.Centered(centerX, y+2, "New High Score!", draw.ColorYellow).Draw(cw)
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		object.Centered(centerX, y+4, ">>  Press SPACE to Restart  <<", "").Draw(cw)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	object.Centered(centerX, centerY-3, "SERVER SHUTTING DOWN", draw.ColorYellow).Draw(cw)
	object.Centered(centerX, centerY-1, "The server is restarting for maintenance.", "").Draw(cw)
	object.Centered(centerX, centerY, "Please reconnect in a moment.", "").Draw(cw)

	remaining := int(c.state.shutdownTimer) + 1
	object.Centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining), "").Draw(cw)
	object.Centered(centerX, centerY+4, "Press Q to disconnect now", "").Draw(cw)
}

func artWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, len(line))
	}
	return w
}
