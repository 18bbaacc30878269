package pipeline

import (
	"errors"
	"testing"

	"github.com/dudu/gazetrack/internal/detector"
	"github.com/dudu/gazetrack/internal/frame"
	"github.com/dudu/gazetrack/internal/gaze"
)

// stubDetector replaces the edge-based detector so pipeline behavior can be
// driven without synthesizing detectable imagery.
type stubDetector struct {
	cands []detector.Candidate
}

func (s *stubDetector) Detect(_ *frame.Gray) ([]detector.Candidate, detector.Stats) {
	return s.cands, detector.Stats{Total: len(s.cands), Accepted: len(s.cands)}
}

type failingEstimator struct{}

func (failingEstimator) Estimate(_, _ *frame.Gray) (gaze.Point, error) {
	return gaze.Point{}, errors.New("model offline")
}

func (failingEstimator) Close() error { return nil }

func testPipelineConfig() Config {
	cfg := DefaultConfig()
	cfg.MirrorInput = false // keep display coordinates equal to source
	return cfg
}

func faceCandidate() detector.Candidate {
	return detector.Candidate{
		Box:   detector.BoundingBox{X1: 200, Y1: 150, X2: 400, Y2: 350},
		Score: 20000,
	}
}

func newTestPipeline(t *testing.T, cfg Config, est GazeEstimator, cands []detector.Candidate) *Pipeline {
	t.Helper()
	p, err := New(cfg, est)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	p.detector = &stubDetector{cands: cands}
	return p
}

func TestProcessFullChain(t *testing.T) {
	p := newTestPipeline(t, testPipelineConfig(), gaze.NewFixed(gaze.Point{X: 0.5, Y: 0.5}),
		[]detector.Candidate{faceCandidate()})

	res := p.Process(frame.NewGray(640, 480))
	if res.Err != nil {
		t.Fatalf("Process() Err = %v", res.Err)
	}
	if !res.FaceFound {
		t.Error("FaceFound = false, want true")
	}
	if res.Face != faceCandidate().Box {
		t.Errorf("Face = %+v, want candidate box under identity mapping", res.Face)
	}
	if !res.GazeValid {
		t.Fatal("GazeValid = false, want true")
	}
	// Center gaze on a 640x480 source displayed 1:1.
	if res.Gaze.X != 320 || res.Gaze.Y != 240 {
		t.Errorf("Gaze = %v, want (320,240)", res.Gaze)
	}
	// Eye rectangles sit inside the face rectangle.
	for _, eye := range []detector.BoundingBox{res.LeftEye, res.RightEye} {
		if eye.X1 < res.Face.X1 || eye.X2 > res.Face.X2 ||
			eye.Y1 < res.Face.Y1 || eye.Y2 > res.Face.Y2 {
			t.Errorf("eye box %+v outside face box %+v", eye, res.Face)
		}
	}
	if res.Timing.Total < res.Timing.Detection {
		t.Error("Timing.Total below Timing.Detection")
	}
	if p.LastTiming() != res.Timing {
		t.Error("LastTiming() differs from result timing")
	}
}

func TestProcessHoldsGazeOnDropout(t *testing.T) {
	stub := &stubDetector{cands: []detector.Candidate{faceCandidate()}}
	p := newTestPipeline(t, testPipelineConfig(), gaze.NewFixed(gaze.Point{X: 0.5, Y: 0.5}), nil)
	p.detector = stub

	f := frame.NewGray(640, 480)
	if res := p.Process(f); !res.GazeValid {
		t.Fatal("priming frame did not produce a gaze")
	}

	stub.cands = nil
	res := p.Process(f)
	if res.FaceFound {
		t.Error("FaceFound = true on dropout frame")
	}
	if !errors.Is(res.Err, ErrNoCandidate) {
		t.Errorf("Err = %v, want ErrNoCandidate", res.Err)
	}
	if !res.GazeValid {
		t.Fatal("GazeValid = false, want held gaze")
	}
	if res.Gaze.X != 320 || res.Gaze.Y != 240 {
		t.Errorf("held Gaze = %v, want (320,240)", res.Gaze)
	}
}

func TestProcessResetsHistoryAfterDropoutStreak(t *testing.T) {
	cfg := testPipelineConfig()
	cfg.ResetAfter = 3
	stub := &stubDetector{cands: []detector.Candidate{faceCandidate()}}
	p := newTestPipeline(t, cfg, gaze.NewFixed(gaze.Point{X: 0.5, Y: 0.5}), nil)
	p.detector = stub

	f := frame.NewGray(640, 480)
	p.Process(f)
	stub.cands = nil

	for i := 1; i <= 2; i++ {
		if res := p.Process(f); !res.GazeValid {
			t.Fatalf("dropout %d: gaze not held", i)
		}
	}
	// Third consecutive dropout clears the history.
	if res := p.Process(f); res.GazeValid {
		t.Error("gaze still valid after reset streak")
	}
}

func TestProcessEmptyFrame(t *testing.T) {
	stub := &stubDetector{cands: []detector.Candidate{faceCandidate()}}
	p := newTestPipeline(t, testPipelineConfig(), gaze.NewFixed(gaze.Point{X: 0.5, Y: 0.5}), nil)
	p.detector = stub

	res := p.Process(&frame.Gray{})
	if !errors.Is(res.Err, ErrInputUnavailable) {
		t.Errorf("Err = %v, want ErrInputUnavailable", res.Err)
	}
	if res.GazeValid {
		t.Error("fresh pipeline held a gaze with no history")
	}

	// With history and a previously seen mapping, an empty frame still
	// reports the held gaze.
	p.Process(frame.NewGray(640, 480))
	res = p.Process(&frame.Gray{})
	if !errors.Is(res.Err, ErrInputUnavailable) {
		t.Errorf("Err = %v, want ErrInputUnavailable", res.Err)
	}
	if !res.GazeValid || res.Gaze.X != 320 || res.Gaze.Y != 240 {
		t.Errorf("held gaze = %v valid=%v, want (320,240) true", res.Gaze, res.GazeValid)
	}
}

func TestProcessInferenceFailure(t *testing.T) {
	p := newTestPipeline(t, testPipelineConfig(), failingEstimator{},
		[]detector.Candidate{faceCandidate()})

	res := p.Process(frame.NewGray(640, 480))
	if !res.FaceFound {
		t.Error("FaceFound = false, want true despite inference failure")
	}
	if !errors.Is(res.Err, ErrInferenceUnavailable) {
		t.Errorf("Err = %v, want ErrInferenceUnavailable", res.Err)
	}
	if res.GazeValid {
		t.Error("GazeValid = true with no gaze history")
	}
}

func TestProcessDegenerateCandidate(t *testing.T) {
	p := newTestPipeline(t, testPipelineConfig(), gaze.NewFixed(gaze.Point{}),
		[]detector.Candidate{{Box: detector.BoundingBox{X1: 50, Y1: 50, X2: 50, Y2: 50}}})

	res := p.Process(frame.NewGray(640, 480))
	if res.FaceFound {
		t.Error("FaceFound = true for zero-area candidate")
	}
	if !errors.Is(res.Err, ErrGeometryDegenerate) {
		t.Errorf("Err = %v, want ErrGeometryDegenerate", res.Err)
	}
}

func TestProcessClampsRawEstimate(t *testing.T) {
	p := newTestPipeline(t, testPipelineConfig(), gaze.NewFixed(gaze.Point{X: 2, Y: -1}),
		[]detector.Candidate{faceCandidate()})

	res := p.Process(frame.NewGray(640, 480))
	if !res.GazeValid {
		t.Fatal("GazeValid = false")
	}
	if res.Gaze.X != 640 || res.Gaze.Y != 0 {
		t.Errorf("Gaze = %v, want clamped (640,0)", res.Gaze)
	}
}

func TestPipelineReset(t *testing.T) {
	stub := &stubDetector{cands: []detector.Candidate{faceCandidate()}}
	p := newTestPipeline(t, testPipelineConfig(), gaze.NewFixed(gaze.Point{X: 0.5, Y: 0.5}), nil)
	p.detector = stub

	f := frame.NewGray(640, 480)
	p.Process(f)
	p.Reset()

	stub.cands = nil
	if res := p.Process(f); res.GazeValid {
		t.Error("gaze held across Reset")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	cfg := testPipelineConfig()
	cfg.BlurKernelSize = 4
	if _, err := New(cfg, gaze.NewFixed(gaze.Point{})); err == nil {
		t.Error("New() accepted an invalid config")
	}
	if _, err := New(testPipelineConfig(), nil); err == nil {
		t.Error("New() accepted a nil estimator")
	}
}
