// Package pipeline orchestrates the per-frame gaze estimation chain:
// face-candidate detection, eye-region derivation, gaze inference, temporal
// smoothing and display mapping. One pipeline instance owns all state that
// survives a frame (the gaze history and the dropout counter).
package pipeline

import (
	"fmt"
	"time"

	"github.com/dudu/gazetrack/internal/detector"
	"github.com/dudu/gazetrack/internal/edge"
	"github.com/dudu/gazetrack/internal/frame"
	"github.com/dudu/gazetrack/internal/gaze"
	"github.com/dudu/gazetrack/internal/log"
	"github.com/dudu/gazetrack/internal/mapper"
)

// Timing holds performance timing information
type Timing struct {
	Detection time.Duration
	EyeCrop   time.Duration
	Inference time.Duration
	Total     time.Duration
}

// Result is the per-frame output, already in destination-view coordinates.
// On a dropout the face rectangle is suppressed and the gaze point holds
// its last smoothed value; Err classifies the soft failure.
type Result struct {
	FaceFound bool
	Face      detector.BoundingBox
	LeftEye   detector.BoundingBox
	RightEye  detector.BoundingBox
	Gaze      gaze.Point
	GazeValid bool
	Err       error
	Timing    Timing
}

// Pipeline runs the detection-and-geometry chain over frames.
type Pipeline struct {
	cfg       Config
	detector  FaceDetector
	estimator GazeEstimator
	smoother  *gaze.Smoother
	eyeCfg    gaze.EyeConfig

	dropouts    int
	lastMapping mapper.Mapping
	haveMapping bool
	lastTiming  Timing
}

// New creates a pipeline from a validated configuration and a gaze
// estimator. Construction failures are hard errors; everything after is
// per-frame and soft.
func New(cfg Config, estimator GazeEstimator) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if estimator == nil {
		return nil, fmt.Errorf("gaze estimator is required")
	}

	det := detector.New(
		edge.Config{
			BlurKernelSize: cfg.BlurKernelSize,
			LowThreshold:   cfg.EdgeLowThreshold,
			HighThreshold:  cfg.EdgeHighThreshold,
		},
		detector.Config{
			MinSize:        cfg.MinFaceSize,
			MaxSize:        cfg.MaxFaceSize,
			MinArea:        cfg.MinContourArea,
			AspectRatioMin: cfg.AspectRatioMin,
			AspectRatioMax: cfg.AspectRatioMax,
			FillRatioMin:   cfg.FillRatioMin,
			FillRatioMax:   cfg.FillRatioMax,
			ConvexityMin:   cfg.ConvexityMin,
		},
		cfg.OverlapIoUThreshold,
		cfg.MaxCandidates,
	)

	return &Pipeline{
		cfg:       cfg,
		detector:  det,
		estimator: estimator,
		smoother:  gaze.NewSmoother(cfg.GazeHistorySize),
		eyeCfg: gaze.EyeConfig{
			EyeYRatio:    cfg.EyeYRatio,
			LeftXRatio:   cfg.LeftXRatio,
			RightXRatio:  cfg.RightXRatio,
			EyeSizeRatio: cfg.EyeSizeRatio,
		},
	}, nil
}

// Process runs the full chain on one frame. It never returns an error:
// every stage fails soft into a reduced Result and the caller proceeds
// with the next frame.
func (p *Pipeline) Process(f *frame.Gray) Result {
	totalStart := time.Now()
	var timing Timing

	if f.Empty() {
		res := p.dropout(ErrInputUnavailable)
		timing.Total = time.Since(totalStart)
		res.Timing = timing
		p.lastTiming = timing
		return res
	}

	m := mapper.New(f.Width, f.Height, p.cfg.DisplayWidth, p.cfg.DisplayHeight, p.cfg.MirrorInput)
	p.lastMapping = m
	p.haveMapping = true

	detectStart := time.Now()
	cands, stats := p.detector.Detect(f)
	timing.Detection = time.Since(detectStart)

	log.Debug(log.Fields{
		"contours":  stats.Total,
		"accepted":  stats.Accepted,
		"size":      stats.RejectSize,
		"area":      stats.RejectArea,
		"aspect":    stats.RejectAspect,
		"fill":      stats.RejectFill,
		"convexity": stats.RejectConvexity,
	}, "frame validated")

	if len(cands) == 0 {
		res := p.dropout(ErrNoCandidate)
		timing.Total = time.Since(totalStart)
		res.Timing = timing
		p.lastTiming = timing
		return res
	}

	best := cands[0]
	if best.Box.Area() <= 0 {
		res := p.dropout(ErrGeometryDegenerate)
		timing.Total = time.Since(totalStart)
		res.Timing = timing
		p.lastTiming = timing
		return res
	}

	// A validated face cancels the dropout streak even if inference fails.
	p.dropouts = 0

	res := Result{
		FaceFound: true,
		Face:      m.Rect(best.Box),
	}

	cropStart := time.Now()
	left, right := gaze.EyeRegions(best.Box, p.eyeCfg)
	left = gaze.ClampToFrame(left, f.Width, f.Height)
	right = gaze.ClampToFrame(right, f.Width, f.Height)
	res.LeftEye = m.Rect(left)
	res.RightEye = m.Rect(right)

	leftCrop := f.Crop(left.ToRect())
	rightCrop := f.Crop(right.ToRect())
	timing.EyeCrop = time.Since(cropStart)

	if leftCrop.Empty() || rightCrop.Empty() {
		res.Err = ErrGeometryDegenerate
		res.Gaze, res.GazeValid = p.heldGaze(m, f)
		timing.Total = time.Since(totalStart)
		res.Timing = timing
		p.lastTiming = timing
		return res
	}

	inferStart := time.Now()
	raw, err := p.estimator.Estimate(leftCrop, rightCrop)
	timing.Inference = time.Since(inferStart)

	if err != nil {
		log.Debug(log.Fields{"error": err.Error()}, "gaze inference failed")
		res.Err = ErrInferenceUnavailable
		res.Gaze, res.GazeValid = p.heldGaze(m, f)
		timing.Total = time.Since(totalStart)
		res.Timing = timing
		p.lastTiming = timing
		return res
	}

	smoothed := p.smoother.Add(gaze.Clamp01(raw))
	res.Gaze = p.toDisplay(m, f, smoothed)
	res.GazeValid = true

	timing.Total = time.Since(totalStart)
	res.Timing = timing
	p.lastTiming = timing
	return res
}

// dropout produces the reduced result for a frame without a usable face.
// The overlay rectangle is suppressed; the smoothed gaze point holds its
// last value. After ResetAfter consecutive dropouts the history is cleared,
// so a reappearing subject does not drag stale gaze positions with it.
func (p *Pipeline) dropout(cause error) Result {
	p.dropouts++
	if p.dropouts >= p.cfg.ResetAfter {
		log.Debug(log.Fields{"frames": p.dropouts}, "gaze history reset after dropout streak")
		p.smoother.Reset()
		p.dropouts = 0
	}

	res := Result{Err: cause}
	if value, ok := p.smoother.Value(); ok && p.haveMapping {
		res.Gaze = p.displayPoint(p.lastMapping, value)
		res.GazeValid = true
	}
	return res
}

// heldGaze returns the last smoothed gaze position without feeding the
// history.
func (p *Pipeline) heldGaze(m mapper.Mapping, f *frame.Gray) (gaze.Point, bool) {
	value, ok := p.smoother.Value()
	if !ok {
		return gaze.Point{}, false
	}
	return p.toDisplay(m, f, value), true
}

// toDisplay maps a normalized gaze point into destination-view pixels.
func (p *Pipeline) toDisplay(m mapper.Mapping, f *frame.Gray, g gaze.Point) gaze.Point {
	x, y := m.Point(g.X*float64(f.Width), g.Y*float64(f.Height))
	return gaze.Point{X: x, Y: y}
}

// displayPoint maps a normalized gaze point with a previously seen mapping.
func (p *Pipeline) displayPoint(m mapper.Mapping, g gaze.Point) gaze.Point {
	x, y := m.Point(g.X*m.SourceWidth, g.Y*m.SourceHeight)
	return gaze.Point{X: x, Y: y}
}

// Reset clears all cross-frame state.
func (p *Pipeline) Reset() {
	p.smoother.Reset()
	p.dropouts = 0
}

// LastTiming returns timing from the last Process call.
func (p *Pipeline) LastTiming() Timing {
	return p.lastTiming
}

// Close releases the estimator.
func (p *Pipeline) Close() error {
	if p.estimator != nil {
		return p.estimator.Close()
	}
	return nil
}
