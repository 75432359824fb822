// Package draw renders projected wireframes to terminals and other 2D surfaces.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Surface is a 2D drawing target in logical coordinates, origin top-left.
// The terminal Canvas and the ebiten window both implement it.
type Surface interface {
	// Size returns the logical width and height.
	Size() (width, height float64)
	// Line draws a straight segment between two points.
	Line(p1, p2 Point, paint Paint)
	// Dot draws a single point.
	Dot(p Point, paint Paint)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
