package pipeline

import "errors"

// Per-frame soft-failure taxonomy. These never propagate out of Process;
// they classify why a frame produced a reduced result.
var (
	// ErrInputUnavailable marks a missing or undecodable frame.
	ErrInputUnavailable = errors.New("input frame unavailable")

	// ErrNoCandidate marks a frame where no contour passed validation.
	ErrNoCandidate = errors.New("no face candidate found")

	// ErrGeometryDegenerate marks a zero-area rectangle or zero-size crop.
	ErrGeometryDegenerate = errors.New("degenerate geometry")

	// ErrInferenceUnavailable marks a gaze estimator failure.
	ErrInferenceUnavailable = errors.New("gaze inference unavailable")
)
