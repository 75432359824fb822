package draw

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestXTerm256_PrimaryColors(t *testing.T) {
	assert.Equal(t, uint8(196), XTerm256(colorful.Color{R: 1}))
	assert.Equal(t, uint8(46), XTerm256(colorful.Color{G: 1}))
	assert.Equal(t, uint8(21), XTerm256(colorful.Color{B: 1}))
	assert.Equal(t, uint8(231), XTerm256(colorful.Color{R: 1, G: 1, B: 1}))
	assert.Equal(t, uint8(16), XTerm256(colorful.Color{}))
}

func TestXTerm256_PrefersGreyRamp(t *testing.T) {
	grey := colorful.Color{R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255}
	assert.Equal(t, uint8(244), XTerm256(grey))
}

func TestHSL_WrapsHueAndClamps(t *testing.T) {
	// Hue 1.5 wraps to 0.5 (cyan); saturation 1.6 clamps to 1.
	got := HSL(1.5, 1.6, 0.5)
	want := colorful.Hsl(180, 1, 0.5)
	assert.InDelta(t, want.R, got.R, 1e-9)
	assert.InDelta(t, want.G, got.G, 1e-9)
	assert.InDelta(t, want.B, got.B, 1e-9)

	red := HSL(0, 1, 0.5)
	assert.InDelta(t, 1.0, red.R, 1e-9)
	assert.InDelta(t, 0.0, red.G, 1e-9)
}

func TestPaint_FlattenDarkensByAlpha(t *testing.T) {
	p := Paint{Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 0.5}
	c := p.Flatten()
	assert.InDelta(t, 0.5, c.R, 1e-9)
	assert.True(t, p.Visible())
	assert.False(t, Paint{Color: c, Alpha: 0}.Visible())
}

func TestHex_ParsesOpaquePaint(t *testing.T) {
	p := Hex("#ff8000")
	assert.Equal(t, 1.0, p.Alpha)
	assert.InDelta(t, 1.0, p.Color.R, 1e-9)
	assert.InDelta(t, 128.0/255, p.Color.G, 1e-9)
	assert.InDelta(t, 0.0, p.Color.B, 1e-9)
}

func TestHex_PanicsOnMalformed(t *testing.T) {
	assert.Panics(t, func() { Hex("not a colour") })
}
