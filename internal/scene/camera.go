package scene

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera that looks at Target.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FOV      float64 // vertical field of view, degrees
	Near     float64
	Far      float64
}

// NewCamera returns a camera at the origin looking down -Z.
func NewCamera(fov float64) *Camera {
	return &Camera{
		Target: mgl64.Vec3{0, 0, -1},
		Up:     mgl64.Vec3{0, 1, 0},
		FOV:    fov,
		Near:   0.1,
		Far:    1000,
	}
}

// ViewProjection returns projection * view for the given aspect ratio.
func (c *Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	view := mgl64.LookAtV(c.Position, c.Target, c.Up)
	proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
	return proj.Mul4(view)
}
