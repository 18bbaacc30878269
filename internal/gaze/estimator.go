package gaze

import "github.com/dudu/gazetrack/internal/frame"

// Estimator produces a raw gaze estimate from a pair of eye crops. The
// output is not guaranteed to lie in [0,1]; callers clamp it.
type Estimator interface {
	Estimate(left, right *frame.Gray) (Point, error)
	Close() error
}

// Fixed is an Estimator returning a constant point. It stands in when no
// model is configured and in tests.
type Fixed struct {
	P Point
}

// NewFixed creates a fixed estimator. The screen center is the usual choice.
func NewFixed(p Point) *Fixed {
	return &Fixed{P: p}
}

// Estimate returns the configured point.
func (f *Fixed) Estimate(_, _ *frame.Gray) (Point, error) {
	return f.P, nil
}

// Close is a no-op.
func (f *Fixed) Close() error {
	return nil
}
