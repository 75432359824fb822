package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/draw"
)

// Renderer projects nodes through a camera onto a surface.
type Renderer struct {
	Camera  *Camera
	Surface draw.Surface

	vp            mgl64.Mat4
	width, height float64
	clipBuf       []mgl64.Vec4
}

// NewRenderer creates a renderer for the surface.
func NewRenderer(surface draw.Surface, camera *Camera) *Renderer {
	return &Renderer{Camera: camera, Surface: surface}
}

// Begin captures the camera and surface size for the frame. Call it after the
// camera moved or the surface resized.
func (r *Renderer) Begin() {
	r.width, r.height = r.Surface.Size()
	aspect := 1.0
	if r.height > 0 {
		aspect = r.width / r.height
	}
	r.vp = r.Camera.ViewProjection(aspect)
}

// Draw renders a node tree.
func (r *Renderer) Draw(n *Node) {
	r.drawNode(n, mgl64.Ident4())
}

func (r *Renderer) drawNode(n *Node, parent mgl64.Mat4) {
	if n == nil || n.Hidden {
		return
	}
	world := parent.Mul4(n.Local())

	if n.Point {
		if p, ok := r.projectClip(r.vp.Mul4x1(world.Col(3))); ok {
			r.Surface.Dot(p, n.Paint)
		}
	}

	if n.Mesh != nil && n.Paint.Visible() {
		mvp := r.vp.Mul4(world)
		if cap(r.clipBuf) < len(n.Mesh.Vertices) {
			r.clipBuf = make([]mgl64.Vec4, len(n.Mesh.Vertices))
		}
		clip := r.clipBuf[:len(n.Mesh.Vertices)]
		for i, v := range n.Mesh.Vertices {
			clip[i] = mvp.Mul4x1(v.Vec4(1))
		}
		for _, e := range n.Mesh.Edges {
			r.clipSegment(clip[e[0]], clip[e[1]], n.Paint)
		}
	}

	for _, c := range n.Children {
		r.drawNode(c, world)
	}
}

// Segment draws a world-space line.
func (r *Renderer) Segment(a, b mgl64.Vec3, paint draw.Paint) {
	r.clipSegment(r.vp.Mul4x1(a.Vec4(1)), r.vp.Mul4x1(b.Vec4(1)), paint)
}

// Project maps a world point to surface coordinates. ok is false when the
// point lies behind the near plane.
func (r *Renderer) Project(p mgl64.Vec3) (draw.Point, bool) {
	return r.projectClip(r.vp.Mul4x1(p.Vec4(1)))
}

func (r *Renderer) projectClip(c mgl64.Vec4) (draw.Point, bool) {
	if c.Z()+c.W() < 0 || c.W() <= 0 {
		return draw.Point{}, false
	}
	return r.toScreen(c), true
}

// clipSegment clips against the near plane (z + w >= 0) and draws the rest.
// Everything else is clipped in 2D by the surface.
func (r *Renderer) clipSegment(a, b mgl64.Vec4, paint draw.Paint) {
	da := a.Z() + a.W()
	db := b.Z() + b.W()
	if da < 0 && db < 0 {
		return
	}
	if da < 0 {
		a = lerp4(a, b, da/(da-db))
	} else if db < 0 {
		b = lerp4(b, a, db/(db-da))
	}
	if a.W() <= 0 || b.W() <= 0 {
		return
	}
	r.Surface.Line(r.toScreen(a), r.toScreen(b), paint)
}

func (r *Renderer) toScreen(c mgl64.Vec4) draw.Point {
	x := c.X() / c.W()
	y := c.Y() / c.W()
	return draw.Point{
		X: (x + 1) / 2 * r.width,
		Y: (1 - y) / 2 * r.height,
	}
}

func lerp4(a, b mgl64.Vec4, t float64) mgl64.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}
