package draw

// ClipLine clips the segment p1-p2 to the rectangle [minX,maxX] x [minY,maxY]
// using the Liang-Barsky algorithm. ok is false when nothing of the segment
// lies inside the rectangle.
func ClipLine(p1, p2 Point, minX, minY, maxX, maxY float64) (a, b Point, ok bool) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, p1.X - minX},
		{dx, maxX - p1.X},
		{-dy, p1.Y - minY},
		{dy, maxY - p1.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return Point{}, Point{}, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return Point{}, Point{}, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return Point{}, Point{}, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}

	a = Point{X: p1.X + t0*dx, Y: p1.Y + t0*dy}
	b = Point{X: p1.X + t1*dx, Y: p1.Y + t1*dy}
	return a, b, true
}
