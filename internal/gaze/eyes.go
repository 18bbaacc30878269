// Package gaze derives eye regions from facial geometry, runs the external
// gaze estimator over them, and smooths the raw estimate over time.
package gaze

import (
	"github.com/dudu/gazetrack/internal/detector"
)

// EyeConfig places the eye squares inside a face rectangle with fixed
// proportional geometry.
type EyeConfig struct {
	EyeYRatio    float32 // vertical eye line, fraction of face height
	LeftXRatio   float32 // left eye center, fraction of face width
	RightXRatio  float32 // right eye center, fraction of face width
	EyeSizeRatio float32 // eye square side, fraction of face width
}

// DefaultEyeConfig returns the standard frontal-face proportions.
func DefaultEyeConfig() EyeConfig {
	return EyeConfig{
		EyeYRatio:    0.35,
		LeftXRatio:   0.3,
		RightXRatio:  0.7,
		EyeSizeRatio: 0.15,
	}
}

// EyeRegions derives the two eye squares from a face rectangle. Pure
// arithmetic, no failure path; callers clamp to frame bounds before cropping.
func EyeRegions(face detector.BoundingBox, cfg EyeConfig) (left, right detector.BoundingBox) {
	w, h := face.Width(), face.Height()
	eyeY := face.Y1 + h*cfg.EyeYRatio
	leftX := face.X1 + w*cfg.LeftXRatio
	rightX := face.X1 + w*cfg.RightXRatio
	halfSize := w * cfg.EyeSizeRatio / 2

	left = detector.BoundingBox{
		X1: leftX - halfSize,
		Y1: eyeY - halfSize,
		X2: leftX + halfSize,
		Y2: eyeY + halfSize,
	}
	right = detector.BoundingBox{
		X1: rightX - halfSize,
		Y1: eyeY - halfSize,
		X2: rightX + halfSize,
		Y2: eyeY + halfSize,
	}
	return left, right
}

// ClampToFrame restricts a box to the frame dimensions. A box entirely
// outside the frame collapses to a zero-area box on the nearest edge.
func ClampToFrame(b detector.BoundingBox, width, height int) detector.BoundingBox {
	w, h := float32(width), float32(height)
	b.X1 = clampRange(b.X1, 0, w)
	b.Y1 = clampRange(b.Y1, 0, h)
	b.X2 = clampRange(b.X2, 0, w)
	b.Y2 = clampRange(b.Y2, 0, h)
	if b.X2 < b.X1 {
		b.X2 = b.X1
	}
	if b.Y2 < b.Y1 {
		b.Y2 = b.Y1
	}
	return b
}

func clampRange(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
