package contour

import "sort"

// convexHull computes the convex hull of a point set with the Andrew
// monotone chain algorithm. The result is in counter-clockwise order in
// image coordinates and contains fewer than 3 points for degenerate input.
func convexHull(pts []Point) []Point {
	if len(pts) < 3 {
		hull := make([]Point, len(pts))
		copy(hull, pts)
		return hull
	}

	sorted := make([]Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	// Deduplicate, the tracer can emit repeated corners.
	dedup := sorted[:1]
	for _, p := range sorted[1:] {
		if p != dedup[len(dedup)-1] {
			dedup = append(dedup, p)
		}
	}
	if len(dedup) < 3 {
		return dedup
	}

	cross := func(o, a, b Point) int {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	var lower []Point
	for _, p := range dedup {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []Point
	for i := len(dedup) - 1; i >= 0; i-- {
		p := dedup[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}
