package draw

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ANSI colour sequences for text overlays.
const (
	ColorReset      = "\033[0m"
	ColorBrightCyan = "\033[96m"
	ColorRed        = "\033[91m"
	ColorGreen      = "\033[92m"
	ColorYellow     = "\033[93m"
)

// Paint is a colour plus opacity. Surfaces without blending darken the
// colour towards black instead.
type Paint struct {
	Color colorful.Color
	Alpha float64
}

// Solid returns a fully opaque paint.
func Solid(c colorful.Color) Paint {
	return Paint{Color: c, Alpha: 1}
}

// Hex returns an opaque paint from a "#rrggbb" string. Panics on malformed input,
// so only use it with constants.
func Hex(s string) Paint {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return Solid(c)
}

// Visible reports whether the paint would show up at all.
func (p Paint) Visible() bool {
	return p.Alpha > 0.02
}

// Flatten blends the paint over a black background.
func (p Paint) Flatten() colorful.Color {
	a := clamp01(p.Alpha)
	return colorful.Color{}.BlendRgb(p.Color, a).Clamped()
}

// HSL builds a colour from hue, saturation and lightness in [0,1].
// Hue wraps around; saturation and lightness are clamped.
func HSL(h, s, l float64) colorful.Color {
	h -= math.Floor(h)
	return colorful.Hsl(h*360, clamp01(s), clamp01(l))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// cubeLevels are the channel intensities of the xterm 6x6x6 colour cube.
var cubeLevels = [6]float64{0, 95, 135, 175, 215, 255}

// XTerm256 returns the closest entry of the xterm 256-colour palette,
// searching the colour cube (16-231) and the grey ramp (232-255).
// The result is never below 16.
func XTerm256(c colorful.Color) uint8 {
	r, g, b := c.Clamped().RGB255()
	ri, gi, bi := nearestCube(float64(r)), nearestCube(float64(g)), nearestCube(float64(b))
	cube := 16 + 36*ri + 6*gi + bi
	cubeDist := sq(cubeLevels[ri]-float64(r)) + sq(cubeLevels[gi]-float64(g)) + sq(cubeLevels[bi]-float64(b))

	mean := (float64(r) + float64(g) + float64(b)) / 3
	gi2 := int(math.Round((mean - 8) / 10))
	gi2 = max(0, min(23, gi2))
	grey := 8 + 10*float64(gi2)
	greyDist := sq(grey-float64(r)) + sq(grey-float64(g)) + sq(grey-float64(b))

	if greyDist < cubeDist {
		return uint8(232 + gi2)
	}
	return uint8(cube)
}

func nearestCube(v float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, l := range cubeLevels {
		if d := math.Abs(l - v); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sq(v float64) float64 { return v * v }
