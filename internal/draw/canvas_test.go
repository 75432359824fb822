package draw

import (
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

var white = Solid(colorful.Color{R: 1, G: 1, B: 1})

func TestCanvas_LineSetsPixels(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Line(Point{0, 0}, Point{9, 0}, white)

	for x := 0; x < 10; x++ {
		assert.Equal(t, uint8(231), c.Pixel(x, 0), "x=%d", x)
	}
	assert.Equal(t, uint8(0), c.Pixel(0, 1))
}

func TestCanvas_LineFullyOutsideIsIgnored(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Line(Point{-50, -50}, Point{-20, -1}, white)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			assert.Equal(t, uint8(0), c.Pixel(x, y))
		}
	}
}

func TestCanvas_RenderHalfBlocks(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Dot(Point{0, 0}, white)
	c.Dot(Point{1, 1}, white)
	c.Dot(Point{2, 0}, white)
	c.Dot(Point{2, 1}, white)

	var out strings.Builder
	c.Render(&out)
	s := out.String()

	assert.Contains(t, s, string(BlockUpperHalf))
	assert.Contains(t, s, string(BlockLowerHalf))
	assert.Contains(t, s, string(BlockFull))
	assert.Contains(t, s, "\033[38;5;231m")
}

func TestCanvas_RenderOnlyWritesChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Dot(Point{1, 1}, white)

	var first strings.Builder
	c.Render(&first)
	assert.NotEmpty(t, first.String())

	var second strings.Builder
	c.Render(&second)
	assert.Empty(t, second.String())

	c.ForceRedraw()
	var third strings.Builder
	c.Render(&third)
	assert.Equal(t, first.String(), third.String())
}

func TestCanvas_MarkTextDirtyRepaintsCells(t *testing.T) {
	c := NewCanvas(4, 2)
	var out strings.Builder
	c.Render(&out)

	c.MarkTextDirty(2, 1, 2)
	out.Reset()
	c.Render(&out)
	assert.Equal(t, "\033[1;2H  ", out.String())
}
