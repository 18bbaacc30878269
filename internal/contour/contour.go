// Package contour extracts external closed boundaries from a binary edge map.
//
// Connected components are labeled first (8-connectivity, so a thinned edge
// stroke stays one component), then the outer boundary of each component is
// traced with Moore-neighbor tracing. Internal contours (holes) are ignored;
// the traced polygon therefore encloses the full region outlined by an edge
// curve, which is what the downstream shape heuristics measure.
package contour

import (
	"image"
	"math"

	"github.com/dudu/gazetrack/internal/frame"
)

// Point is a 2D integer point on a traced boundary.
type Point struct {
	X, Y int
}

// Contour is one external closed boundary with derived geometry.
// All fields are recomputed every frame; nothing aliases across frames.
type Contour struct {
	Points   []Point
	Bounds   image.Rectangle
	Area     float64 // |shoelace| of Points
	Hull     []Point
	HullArea float64
}

// Extract returns the external boundary of every connected component in the
// map. Order is not significant.
func Extract(m *frame.Binary) []Contour {
	if m.Empty() {
		return nil
	}

	labels, stats := label(m)

	out := make([]Contour, 0, len(stats))
	for i, st := range stats {
		pts := trace(labels, m.Width, m.Height, i+1, st)
		if len(pts) == 0 {
			continue
		}
		hull := convexHull(pts)
		out = append(out, Contour{
			Points:   pts,
			Bounds:   image.Rect(st.minX, st.minY, st.maxX+1, st.maxY+1),
			Area:     polygonArea(pts),
			Hull:     hull,
			HullArea: polygonArea(hull),
		})
	}
	return out
}

type componentStats struct {
	count                  int
	minX, minY, maxX, maxY int
}

// label assigns a positive label to each 8-connected component of set pixels
// and returns per-component stats. Labels start at 1.
func label(m *frame.Binary) ([]int, []componentStats) {
	w, h := m.Width, m.Height
	labels := make([]int, w*h)
	var stats []componentStats

	stack := make([][2]int, 0, 256)
	next := 1

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Pix[y*w+x] == 0 || labels[y*w+x] != 0 {
				continue
			}

			st := componentStats{minX: x, minY: y, maxX: x, maxY: y}
			labels[y*w+x] = next
			stack = append(stack, [2]int{x, y})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				st.count++
				if p[0] < st.minX {
					st.minX = p[0]
				}
				if p[0] > st.maxX {
					st.maxX = p[0]
				}
				if p[1] < st.minY {
					st.minY = p[1]
				}
				if p[1] > st.maxY {
					st.maxY = p[1]
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p[0]+dx, p[1]+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						ni := ny*w + nx
						if m.Pix[ni] == 0 || labels[ni] != 0 {
							continue
						}
						labels[ni] = next
						stack = append(stack, [2]int{nx, ny})
					}
				}
			}

			stats = append(stats, st)
			next++
		}
	}
	return labels, stats
}

// polygonArea returns the absolute shoelace area of a closed polygon.
func polygonArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += float64(pts[i].X*pts[j].Y - pts[j].X*pts[i].Y)
	}
	return math.Abs(sum) / 2
}
