package detector

import "sort"

// resolve performs greedy overlap suppression on validated candidates.
// Candidates are ranked by score descending (stable, so ties keep input
// order); a candidate is kept only if its IoU with every already-kept
// candidate is below iouThreshold. At most maxCandidates survive.
func resolve(cands []Candidate, iouThreshold float32, maxCandidates int) []Candidate {
	if len(cands) == 0 || maxCandidates <= 0 {
		return nil
	}

	ranked := make([]Candidate, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	kept := make([]Candidate, 0, maxCandidates)
	for _, c := range ranked {
		overlaps := false
		for _, k := range kept {
			if iou(c.Box, k.Box) >= iouThreshold {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		kept = append(kept, c)
		if len(kept) == maxCandidates {
			break
		}
	}
	return kept
}

// iou calculates Intersection over Union of two bounding boxes
func iou(a, b BoundingBox) float32 {
	// Intersection
	x1 := max32(a.X1, b.X1)
	y1 := max32(a.Y1, b.Y1)
	x2 := min32(a.X2, b.X2)
	y2 := min32(a.Y2, b.Y2)

	if x1 >= x2 || y1 >= y2 {
		return 0
	}

	intersection := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - intersection

	if union <= 0 {
		return 0
	}

	return intersection / union
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
