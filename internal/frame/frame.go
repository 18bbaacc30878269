package frame

import (
	"fmt"
	"image"
)

// Gray is a single-channel 8-bit frame in row-major order.
// A Gray is owned by one pipeline invocation and discarded after it.
type Gray struct {
	Width  int
	Height int
	Pix    []uint8 // len == Width*Height
}

// NewGray allocates a zeroed grayscale frame.
func NewGray(width, height int) *Gray {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Gray{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// FromBytes wraps an existing pixel buffer as a frame.
func FromBytes(width, height int, pix []uint8) (*Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("pixel buffer length %d does not match %dx%d", len(pix), width, height)
	}
	return &Gray{Width: width, Height: height, Pix: pix}, nil
}

// Empty reports whether the frame holds no pixels.
func (g *Gray) Empty() bool {
	return g == nil || g.Width == 0 || g.Height == 0 || len(g.Pix) == 0
}

// At returns the pixel value at (x,y). Out-of-bounds reads return 0.
func (g *Gray) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	return g.Pix[y*g.Width+x]
}

// Set writes the pixel value at (x,y). Out-of-bounds writes are dropped.
func (g *Gray) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Pix[y*g.Width+x] = v
}

// Bounds returns the frame rectangle.
func (g *Gray) Bounds() image.Rectangle {
	if g == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, g.Width, g.Height)
}

// MeanBrightness returns the average pixel value, 0 for an empty frame.
func (g *Gray) MeanBrightness() float64 {
	if g.Empty() {
		return 0
	}
	var sum uint64
	for _, v := range g.Pix {
		sum += uint64(v)
	}
	return float64(sum) / float64(len(g.Pix))
}

// Crop returns a copy of the region r clamped to the frame bounds.
// A degenerate intersection yields an empty frame.
func (g *Gray) Crop(r image.Rectangle) *Gray {
	r = r.Intersect(g.Bounds())
	if r.Empty() {
		return &Gray{}
	}
	out := NewGray(r.Dx(), r.Dy())
	for y := 0; y < out.Height; y++ {
		src := (r.Min.Y+y)*g.Width + r.Min.X
		copy(out.Pix[y*out.Width:(y+1)*out.Width], g.Pix[src:src+out.Width])
	}
	return out
}

// ResizeTo returns a nearest-neighbor resample of the frame.
func (g *Gray) ResizeTo(width, height int) *Gray {
	if g.Empty() || width <= 0 || height <= 0 {
		return &Gray{}
	}
	out := NewGray(width, height)
	for y := 0; y < height; y++ {
		sy := y * g.Height / height
		for x := 0; x < width; x++ {
			sx := x * g.Width / width
			out.Pix[y*width+x] = g.Pix[sy*g.Width+sx]
		}
	}
	return out
}
