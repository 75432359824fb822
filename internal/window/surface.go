package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tomz197/spacebeat/internal/draw"
)

// Surface draws wireframes onto an ebiten image in pixel coordinates.
type Surface struct {
	img *ebiten.Image
}

var _ draw.Surface = (*Surface)(nil)

// Target points the surface at the image of the current frame.
func (s *Surface) Target(img *ebiten.Image) {
	s.img = img
}

func (s *Surface) Size() (float64, float64) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Surface) Line(p1, p2 draw.Point, paint draw.Paint) {
	if s.img == nil || !paint.Visible() {
		return
	}
	vector.StrokeLine(s.img, float32(p1.X), float32(p1.Y), float32(p2.X), float32(p2.Y), 1, toColor(paint), true)
}

func (s *Surface) Dot(p draw.Point, paint draw.Paint) {
	if s.img == nil || !paint.Visible() {
		return
	}
	vector.DrawFilledRect(s.img, float32(p.X), float32(p.Y), 1.5, 1.5, toColor(paint), true)
}

// toColor converts a paint to a non-premultiplied colour.
func toColor(p draw.Paint) color.NRGBA {
	r, g, b := p.Color.Clamped().RGB255()
	a := min(max(p.Alpha, 0), 1)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a * 255)}
}
