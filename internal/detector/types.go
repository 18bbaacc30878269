package detector

import (
	"image"
	"math"
)

// Point represents a 2D point
type Point struct {
	X, Y float32
}

// BoundingBox represents a candidate bounding box
type BoundingBox struct {
	X1, Y1 float32 // top-left
	X2, Y2 float32 // bottom-right
}

// FromRect converts an integer rectangle to a bounding box
func FromRect(r image.Rectangle) BoundingBox {
	return BoundingBox{
		X1: float32(r.Min.X),
		Y1: float32(r.Min.Y),
		X2: float32(r.Max.X),
		Y2: float32(r.Max.Y),
	}
}

// Width returns box width
func (b BoundingBox) Width() float32 {
	return b.X2 - b.X1
}

// Height returns box height
func (b BoundingBox) Height() float32 {
	return b.Y2 - b.Y1
}

// Center returns box center point
func (b BoundingBox) Center() Point {
	return Point{
		X: (b.X1 + b.X2) / 2,
		Y: (b.Y1 + b.Y2) / 2,
	}
}

// Area returns box area
func (b BoundingBox) Area() float32 {
	return b.Width() * b.Height()
}

// AspectRatio returns width/height, or 0 for a degenerate box
func (b BoundingBox) AspectRatio() float32 {
	if b.Height() <= 0 {
		return 0
	}
	return b.Width() / b.Height()
}

// ToRect converts the box to an integer rectangle, rounding half away from zero
func (b BoundingBox) ToRect() image.Rectangle {
	return image.Rect(
		int(math.Round(float64(b.X1))),
		int(math.Round(float64(b.Y1))),
		int(math.Round(float64(b.X2))),
		int(math.Round(float64(b.Y2))),
	)
}

// Candidate represents a face-like region that passed validation
type Candidate struct {
	Box   BoundingBox
	Score float32 // contour area; larger regions rank first
}
