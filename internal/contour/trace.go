package contour

// 8-neighborhood in clockwise order: E, SE, S, SW, W, NW, N, NE.
var (
	neighborDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	neighborDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

// trace walks the outer boundary of one labeled component with Moore-neighbor
// tracing, restricted to the component's bounding box. Collinear points are
// dropped as they are appended, so straight runs collapse to their endpoints.
func trace(labels []int, w, h, lab int, st componentStats) []Point {
	sx, sy := startPixel(labels, w, h, lab, st)
	if sx < 0 {
		return nil
	}

	isSet := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return labels[y*w+x] == lab
	}

	pts := make([]Point, 0, 32)
	push := func(x, y int) {
		if n := len(pts); n >= 2 {
			a, b := pts[n-2], pts[n-1]
			// Drop b if a, b, (x,y) are collinear.
			if (b.X-a.X)*(y-b.Y)-(b.Y-a.Y)*(x-b.X) == 0 {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, Point{X: x, Y: y})
	}

	cx, cy := sx, sy
	bx, by := sx-1, sy // backtrack starts left of the start pixel
	startBX, startBY := bx, by
	push(cx, cy)

	// A boundary pixel is visited at most a handful of times; this bound
	// terminates tracing even on pathological masks.
	maxSteps := 4*w*h + 8

	for step := 0; step < maxSteps; step++ {
		nx, ny, nbx, nby, ok := nextBoundary(isSet, cx, cy, bx, by)
		if !ok {
			break // isolated pixel
		}
		cx, cy = nx, ny
		bx, by = nbx, nby

		if cx == sx && cy == sy && bx == startBX && by == startBY {
			break
		}
		if last := pts[len(pts)-1]; last.X != cx || last.Y != cy {
			push(cx, cy)
		}
	}

	// Drop a duplicated closing point, then re-check the seam for
	// collinearity between the last, first and second points.
	if n := len(pts); n >= 2 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	if n := len(pts); n >= 3 {
		a, b, c := pts[n-1], pts[0], pts[1]
		if (b.X-a.X)*(c.Y-b.Y)-(b.Y-a.Y)*(c.X-b.X) == 0 {
			pts = append(pts[:0], pts[1:]...)
		}
	}
	return pts
}

// startPixel finds the first boundary pixel of the component in scan order.
func startPixel(labels []int, w, h, lab int, st componentStats) (int, int) {
	for y := st.minY; y <= st.maxY; y++ {
		for x := st.minX; x <= st.maxX; x++ {
			if labels[y*w+x] != lab {
				continue
			}
			if x == 0 || labels[y*w+x-1] != lab {
				return x, y
			}
		}
	}
	return -1, -1
}

// nextBoundary scans the Moore neighborhood of (cx,cy) clockwise starting
// from the backtrack pixel (bx,by) and returns the next boundary pixel plus
// its backtrack position.
func nextBoundary(isSet func(int, int) bool, cx, cy, bx, by int) (nx, ny, nbx, nby int, ok bool) {
	start := 0
	for i := 0; i < 8; i++ {
		if cx+neighborDX[i] == bx && cy+neighborDY[i] == by {
			start = (i + 1) % 8
			break
		}
	}

	px, py := bx, by
	for k := 0; k < 8; k++ {
		i := (start + k) % 8
		tx, ty := cx+neighborDX[i], cy+neighborDY[i]
		if isSet(tx, ty) {
			return tx, ty, px, py, true
		}
		px, py = tx, ty
	}
	return 0, 0, 0, 0, false
}
