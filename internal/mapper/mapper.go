// Package mapper transforms coordinates from source-frame space into
// destination-view space with an aspect-preserving fit and optional
// horizontal mirroring for front-facing capture.
package mapper

import (
	"image"
	"math"

	"github.com/dudu/gazetrack/internal/detector"
)

// Mapping describes one source-to-destination transform. It is cheap to
// build and carries no state, so it is recomputed whenever dimensions
// change.
type Mapping struct {
	SourceWidth  float64
	SourceHeight float64
	DestWidth    float64
	DestHeight   float64
	Mirror       bool
}

// New builds a mapping from integer dimensions.
func New(sourceWidth, sourceHeight, destWidth, destHeight int, mirror bool) Mapping {
	return Mapping{
		SourceWidth:  float64(sourceWidth),
		SourceHeight: float64(sourceHeight),
		DestWidth:    float64(destWidth),
		DestHeight:   float64(destHeight),
		Mirror:       mirror,
	}
}

// scaleOffset computes the aspect-fit scale and centering offsets. The
// wider space (relative aspect) fits its width; otherwise height fits. The
// non-fitted axis is centered in the destination. Matching dimensions
// degenerate to identity.
func (m Mapping) scaleOffset() (scale, offsetX, offsetY float64) {
	if m.SourceWidth <= 0 || m.SourceHeight <= 0 || m.DestWidth <= 0 || m.DestHeight <= 0 {
		return 1, 0, 0
	}
	sourceAspect := m.SourceWidth / m.SourceHeight
	destAspect := m.DestWidth / m.DestHeight

	if sourceAspect > destAspect {
		scale = m.DestWidth / m.SourceWidth
	} else {
		scale = m.DestHeight / m.SourceHeight
	}
	offsetX = (m.DestWidth - m.SourceWidth*scale) / 2
	offsetY = (m.DestHeight - m.SourceHeight*scale) / 2
	return scale, offsetX, offsetY
}

// Point maps a source-space point into destination space. Mirroring
// reflects x about the source width before scaling.
func (m Mapping) Point(x, y float64) (float64, float64) {
	scale, offsetX, offsetY := m.scaleOffset()
	if m.Mirror {
		x = m.SourceWidth - x
	}
	return x*scale + offsetX, y*scale + offsetY
}

// Unmap is the inverse of Point within floating-point tolerance.
func (m Mapping) Unmap(x, y float64) (float64, float64) {
	scale, offsetX, offsetY := m.scaleOffset()
	x = (x - offsetX) / scale
	y = (y - offsetY) / scale
	if m.Mirror {
		x = m.SourceWidth - x
	}
	return x, y
}

// Viewport returns the destination-space rectangle the source frame maps
// onto. The area outside it is letterbox padding; mirroring moves points
// within the viewport but not the viewport itself.
func (m Mapping) Viewport() image.Rectangle {
	scale, offsetX, offsetY := m.scaleOffset()
	return image.Rect(
		int(math.Round(offsetX)),
		int(math.Round(offsetY)),
		int(math.Round(offsetX+m.SourceWidth*scale)),
		int(math.Round(offsetY+m.SourceHeight*scale)),
	)
}

// Rect maps a source-space box into destination space, corner by corner.
// Mirroring swaps the horizontal corner order, so the result is
// re-normalized to keep X1 <= X2.
func (m Mapping) Rect(b detector.BoundingBox) detector.BoundingBox {
	x1, y1 := m.Point(float64(b.X1), float64(b.Y1))
	x2, y2 := m.Point(float64(b.X2), float64(b.Y2))
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return detector.BoundingBox{
		X1: float32(x1),
		Y1: float32(y1),
		X2: float32(x2),
		Y2: float32(y2),
	}
}
