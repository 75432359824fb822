package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/spacebeat/internal/draw"
)

// Node is a transform in the scene graph. It draws its mesh (or a single dot
// when Point is set) and then its children, all relative to its own transform.
type Node struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    mgl64.Vec3
	Mesh     *Mesh
	Paint    draw.Paint
	Point    bool
	Hidden   bool
	Children []*Node
}

// NewNode creates a node with unit scale.
func NewNode(mesh *Mesh, paint draw.Paint) *Node {
	return &Node{
		Mesh:  mesh,
		Paint: paint,
		Scale: mgl64.Vec3{1, 1, 1},
	}
}

// NewGroup creates an empty node holding the given children.
func NewGroup(children ...*Node) *Node {
	n := NewNode(nil, draw.Paint{})
	n.Children = children
	return n
}

// Add appends children.
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Local returns the node's transform relative to its parent: T * R * S.
func (n *Node) Local() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := mgl64.HomogRotate3DX(n.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(n.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(n.Rotation.Z()))
	s := mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// SetPaint recolours the node and all of its descendants.
func (n *Node) SetPaint(p draw.Paint) {
	n.Paint = p
	for _, c := range n.Children {
		c.SetPaint(p)
	}
}
