package detector

import "github.com/dudu/gazetrack/internal/contour"

// Config holds the shape heuristics that stand in for a trained face model:
// a candidate must be a compact, moderately convex, solid blob of contrast.
type Config struct {
	MinSize        float32 // bounding box side lower bound, pixels
	MaxSize        float32 // bounding box side upper bound, pixels
	MinArea        float32 // contour area lower bound
	AspectRatioMin float32
	AspectRatioMax float32
	FillRatioMin   float32
	FillRatioMax   float32
	ConvexityMin   float32
}

// Stats counts validation outcomes per gate for one frame.
type Stats struct {
	Total           int
	RejectSize      int
	RejectArea      int
	RejectAspect    int
	RejectFill      int
	RejectConvexity int
	Accepted        int
}

// Validate gates each contour through the configured shape heuristics and
// returns the survivors as candidates scored by contour area. Gates are
// checked in order; a contour stops at the first failing gate.
func Validate(contours []contour.Contour, cfg Config) ([]Candidate, Stats) {
	stats := Stats{Total: len(contours)}
	var out []Candidate

	for _, c := range contours {
		box := FromRect(c.Bounds)
		w, h := box.Width(), box.Height()

		if w < cfg.MinSize || w > cfg.MaxSize || h < cfg.MinSize || h > cfg.MaxSize {
			stats.RejectSize++
			continue
		}
		if float32(c.Area) < cfg.MinArea {
			stats.RejectArea++
			continue
		}

		aspect := box.AspectRatio()
		if aspect < cfg.AspectRatioMin || aspect > cfg.AspectRatioMax {
			stats.RejectAspect++
			continue
		}

		boxArea := box.Area()
		if boxArea <= 0 {
			stats.RejectFill++
			continue
		}
		fill := float32(c.Area) / boxArea
		if fill < cfg.FillRatioMin || fill > cfg.FillRatioMax {
			stats.RejectFill++
			continue
		}

		// A hull with fewer than 3 points has no area to compare against.
		if len(c.Hull) < 3 || c.HullArea <= 0 {
			stats.RejectConvexity++
			continue
		}
		if float32(c.Area/c.HullArea) < cfg.ConvexityMin {
			stats.RejectConvexity++
			continue
		}

		stats.Accepted++
		out = append(out, Candidate{Box: box, Score: float32(c.Area)})
	}
	return out, stats
}
