// Package scene holds the wireframe scene graph: meshes, transform nodes,
// the perspective camera and the renderer that projects them onto a draw.Surface.
package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a wireframe: vertices in local space plus the edges between them.
type Mesh struct {
	Vertices []mgl64.Vec3
	Edges    [][2]int
}

// Box returns an axis-aligned box centred on the origin.
func Box(width, height, depth float64) *Mesh {
	x, y, z := width/2, height/2, depth/2
	m := &Mesh{}
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				m.Vertices = append(m.Vertices, mgl64.Vec3{sx * x, sy * y, sz * z})
			}
		}
	}
	// Vertex i has bit 2 = x, bit 1 = y, bit 0 = z; edges join indices differing in one bit.
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if j := i ^ bit; j > i {
				m.Edges = append(m.Edges, [2]int{i, j})
			}
		}
	}
	return m
}

// Cylinder returns a capless tube along the Y axis centred on the origin.
// A zero top radius collapses the top ring into a single apex (a cone).
func Cylinder(radiusTop, radiusBottom, height float64, segments int) *Mesh {
	segments = max(segments, 3)
	m := &Mesh{}
	ring := func(r, y float64) int {
		start := len(m.Vertices)
		for i := 0; i < segments; i++ {
			theta := float64(i) / float64(segments) * 2 * math.Pi
			m.Vertices = append(m.Vertices, mgl64.Vec3{r * math.Sin(theta), y, r * math.Cos(theta)})
		}
		for i := 0; i < segments; i++ {
			m.Edges = append(m.Edges, [2]int{start + i, start + (i+1)%segments})
		}
		return start
	}

	bottom := ring(radiusBottom, -height/2)
	if radiusTop == 0 {
		apex := len(m.Vertices)
		m.Vertices = append(m.Vertices, mgl64.Vec3{0, height / 2, 0})
		for i := 0; i < segments; i++ {
			m.Edges = append(m.Edges, [2]int{bottom + i, apex})
		}
		return m
	}
	top := ring(radiusTop, height/2)
	for i := 0; i < segments; i++ {
		m.Edges = append(m.Edges, [2]int{bottom + i, top + i})
	}
	return m
}

// Cone returns a cone along the Y axis with its apex at +height/2.
func Cone(radius, height float64, segments int) *Mesh {
	return Cylinder(0, radius, height, segments)
}

// Sphere returns a UV sphere wireframe made of latitude rings and meridians.
func Sphere(radius float64, widthSegments, heightSegments int) *Mesh {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)
	m := &Mesh{}
	m.Vertices = append(m.Vertices, mgl64.Vec3{0, radius, 0}, mgl64.Vec3{0, -radius, 0})
	const north, south = 0, 1

	rings := heightSegments - 1
	index := func(ring, seg int) int { return 2 + ring*widthSegments + seg%widthSegments }
	for i := 1; i <= rings; i++ {
		phi := float64(i) / float64(heightSegments) * math.Pi
		y := radius * math.Cos(phi)
		r := radius * math.Sin(phi)
		for j := 0; j < widthSegments; j++ {
			theta := float64(j) / float64(widthSegments) * 2 * math.Pi
			m.Vertices = append(m.Vertices, mgl64.Vec3{-r * math.Cos(theta), y, r * math.Sin(theta)})
		}
	}
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < widthSegments; seg++ {
			m.Edges = append(m.Edges, [2]int{index(ring, seg), index(ring, seg+1)})
			if ring+1 < rings {
				m.Edges = append(m.Edges, [2]int{index(ring, seg), index(ring+1, seg)})
			}
		}
	}
	for seg := 0; seg < widthSegments; seg++ {
		m.Edges = append(m.Edges, [2]int{north, index(0, seg)}, [2]int{south, index(rings-1, seg)})
	}
	return m
}

// Torus returns a ring in the XY plane.
func Torus(radius, tube float64, radialSegments, tubularSegments int) *Mesh {
	radialSegments = max(radialSegments, 3)
	tubularSegments = max(tubularSegments, 3)
	m := &Mesh{}
	index := func(u, v int) int { return (u%tubularSegments)*radialSegments + v%radialSegments }
	for u := 0; u < tubularSegments; u++ {
		a := float64(u) / float64(tubularSegments) * 2 * math.Pi
		for v := 0; v < radialSegments; v++ {
			b := float64(v) / float64(radialSegments) * 2 * math.Pi
			r := radius + tube*math.Cos(b)
			m.Vertices = append(m.Vertices, mgl64.Vec3{r * math.Cos(a), r * math.Sin(a), tube * math.Sin(b)})
		}
	}
	for u := 0; u < tubularSegments; u++ {
		for v := 0; v < radialSegments; v++ {
			m.Edges = append(m.Edges, [2]int{index(u, v), index(u+1, v)}, [2]int{index(u, v), index(u, v+1)})
		}
	}
	return m
}

// Polyhedron builds a wireframe from triangle faces, emitting each shared edge once.
func Polyhedron(vertices []mgl64.Vec3, faces [][3]int) *Mesh {
	m := &Mesh{Vertices: append([]mgl64.Vec3(nil), vertices...)}
	seen := make(map[[2]int]struct{})
	for _, f := range faces {
		for k := 0; k < 3; k++ {
			a, b := f[k], f[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			if _, ok := seen[[2]int{a, b}]; ok {
				continue
			}
			seen[[2]int{a, b}] = struct{}{}
			m.Edges = append(m.Edges, [2]int{a, b})
		}
	}
	return m
}

// Jitter returns a copy of m with every vertex displaced by up to ±amount/2 per axis.
func Jitter(m *Mesh, amount float64, rng *rand.Rand) *Mesh {
	out := &Mesh{
		Vertices: make([]mgl64.Vec3, len(m.Vertices)),
		Edges:    m.Edges,
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = v.Add(mgl64.Vec3{
			(rng.Float64() - 0.5) * amount,
			(rng.Float64() - 0.5) * amount,
			(rng.Float64() - 0.5) * amount,
		})
	}
	return out
}
