// Package detector proposes face-like regions from contrast alone: an edge
// map is reduced to contours, contours are gated by shape heuristics, and
// overlapping survivors are suppressed down to a ranked, non-overlapping set.
package detector

import (
	"github.com/dudu/gazetrack/internal/contour"
	"github.com/dudu/gazetrack/internal/edge"
	"github.com/dudu/gazetrack/internal/frame"
)

// Detector runs the edge -> contour -> validate -> resolve chain on a frame.
type Detector struct {
	edgeCfg       edge.Config
	validatorCfg  Config
	iouThreshold  float32
	maxCandidates int
}

// New creates a detector with the given stage configuration.
func New(edgeCfg edge.Config, validatorCfg Config, iouThreshold float32, maxCandidates int) *Detector {
	return &Detector{
		edgeCfg:       edgeCfg,
		validatorCfg:  validatorCfg,
		iouThreshold:  iouThreshold,
		maxCandidates: maxCandidates,
	}
}

// Detect finds non-overlapping face-like candidates in a grayscale frame,
// best first. All intermediate buffers are scoped to this call.
func (d *Detector) Detect(g *frame.Gray) ([]Candidate, Stats) {
	if g.Empty() {
		return nil, Stats{}
	}
	edges := edge.Build(g, d.edgeCfg)
	contours := contour.Extract(edges)
	cands, stats := Validate(contours, d.validatorCfg)
	return resolve(cands, d.iouThreshold, d.maxCandidates), stats
}
