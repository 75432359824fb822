package window

import (
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/tomz197/spacebeat/internal/draw"
)

func TestCursorY(t *testing.T) {
	assert.Equal(t, -1.0, cursorY(0, 600))
	assert.InDelta(t, 0.0, cursorY(300, 600), 1e-9)
	assert.Equal(t, 1.0, cursorY(900, 600))
	assert.Equal(t, -1.0, cursorY(-20, 600))
	assert.Zero(t, cursorY(10, 0))
}

func TestToColor(t *testing.T) {
	c := toColor(draw.Paint{Color: colorful.Color{R: 1, G: 0, B: 0}, Alpha: 1})
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, c)

	c = toColor(draw.Paint{Color: colorful.Color{R: 0, G: 0, B: 1}, Alpha: 0.5})
	assert.Equal(t, uint8(255), c.B)
	assert.Equal(t, uint8(127), c.A)

	c = toColor(draw.Paint{Color: colorful.Color{R: 2, G: -1, B: 0}, Alpha: 3})
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, c)
}
