package object

import (
	"github.com/tomz197/spacebeat/internal/draw"
)

// TextWriter places strings at 1-based terminal cells. draw.ChunkWriter implements it.
type TextWriter interface {
	WriteAt(col, row int, s string)
}

// Text is a simple drawable text label.
// Coordinates are 1-based terminal positions.
type Text struct {
	X     int
	Y     int
	Value string
	Color string // ANSI colour sequence, empty for the default colour
}

// Centered returns a label horizontally centred on col.
func Centered(col, row int, value, color string) Text {
	return Text{X: col - len([]rune(value))/2, Y: row, Value: value, Color: color}
}

// Draw writes the text at its position.
func (t Text) Draw(w TextWriter) {
	if t.Value == "" {
		return
	}
	x := max(t.X, 1)
	y := max(t.Y, 1)
	if t.Color == "" {
		w.WriteAt(x, y, t.Value)
		return
	}
	w.WriteAt(x, y, t.Color+t.Value+draw.ColorReset)
}

// Width returns the number of terminal cells the label covers.
func (t Text) Width() int {
	return len([]rune(t.Value))
}
