package pipeline

import (
	"github.com/dudu/gazetrack/internal/detector"
	"github.com/dudu/gazetrack/internal/frame"
	"github.com/dudu/gazetrack/internal/gaze"
)

// FaceDetector proposes ranked, non-overlapping face-like regions.
type FaceDetector interface {
	Detect(g *frame.Gray) ([]detector.Candidate, detector.Stats)
}

// GazeEstimator produces a raw gaze estimate from a pair of eye crops.
type GazeEstimator interface {
	Estimate(left, right *frame.Gray) (gaze.Point, error)
	Close() error
}
