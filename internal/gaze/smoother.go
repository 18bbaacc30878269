package gaze

// Point is a gaze estimate, normalized to [0,1] per axis as a fractional
// screen position.
type Point struct {
	X, Y float64
}

// Clamp01 restricts the point to the unit square. Raw estimator output is
// not guaranteed to be bounded, so it is clamped before entering the history.
func Clamp01(p Point) Point {
	return Point{X: clamp01(p.X), Y: clamp01(p.Y)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Smoother is a fixed-capacity FIFO over gaze points producing a plain
// moving average. No outlier rejection, no recency weighting. Owned by a
// single pipeline instance; not safe for concurrent use.
type Smoother struct {
	window int
	points []Point
}

// NewSmoother creates a smoother over a window of at least 1 point.
func NewSmoother(window int) *Smoother {
	if window < 1 {
		window = 1
	}
	return &Smoother{
		window: window,
		points: make([]Point, 0, window),
	}
}

// Add appends a point, evicting the oldest once the window is full, and
// returns the current average.
func (s *Smoother) Add(p Point) Point {
	if len(s.points) == s.window {
		copy(s.points, s.points[1:])
		s.points = s.points[:s.window-1]
	}
	s.points = append(s.points, p)
	avg, _ := s.Value()
	return avg
}

// Value returns the average of the buffered points, or false if empty.
func (s *Smoother) Value() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	var sum Point
	for _, p := range s.points {
		sum.X += p.X
		sum.Y += p.Y
	}
	n := float64(len(s.points))
	return Point{X: sum.X / n, Y: sum.Y / n}, true
}

// Len returns the number of buffered points.
func (s *Smoother) Len() int {
	return len(s.points)
}

// Window returns the configured capacity.
func (s *Smoother) Window() int {
	return s.window
}

// Reset clears the history.
func (s *Smoother) Reset() {
	s.points = s.points[:0]
}
