// Package edge turns a grayscale frame into a noise-suppressed binary edge map.
//
// The detector is the classic gradient pipeline: Gaussian smoothing, Sobel
// gradients, non-maximum suppression along the gradient direction, double
// thresholding and connected-component hysteresis between the low and high
// thresholds.
package edge

import (
	"math"

	"github.com/dudu/gazetrack/internal/frame"
)

// Config controls smoothing strength and detector sensitivity.
type Config struct {
	BlurKernelSize int // odd, >= 3
	LowThreshold   float64
	HighThreshold  float64
}

const (
	pixelNone   uint8 = 0
	pixelWeak   uint8 = 1
	pixelStrong uint8 = 2
)

// Build produces a binary edge map with the same dimensions as the input.
// A degenerate input yields an empty map.
func Build(g *frame.Gray, cfg Config) *frame.Binary {
	if g.Empty() {
		return &frame.Binary{}
	}
	kernelSize := cfg.BlurKernelSize
	if kernelSize < 3 {
		kernelSize = 3
	}
	if kernelSize%2 == 0 {
		kernelSize++
	}

	w, h := g.Width, g.Height
	smoothed := blur(g, kernelSize)
	mag, dir := sobel(smoothed, w, h)
	thin := nonMaxSuppress(mag, dir, w, h)

	// Double threshold
	marks := make([]uint8, w*h)
	for i, m := range thin {
		switch {
		case m >= cfg.HighThreshold:
			marks[i] = pixelStrong
		case m >= cfg.LowThreshold:
			marks[i] = pixelWeak
		}
	}

	return hysteresis(marks, w, h)
}

// sobel computes gradient magnitude and direction from a smoothed image.
func sobel(pix []float64, w, h int) (mag, dir []float64) {
	mag = make([]float64, w*h)
	dir = make([]float64, w*h)

	at := func(x, y int) float64 {
		return pix[clampInt(y, 0, h-1)*w+clampInt(x, 0, w-1)]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)

			i := y*w + x
			mag[i] = math.Hypot(gx, gy)
			dir[i] = math.Atan2(gy, gx)
		}
	}
	return mag, dir
}

// nonMaxSuppress thins the gradient ridge to single-pixel width by keeping
// only local maxima along the quantized gradient direction.
func nonMaxSuppress(mag, dir []float64, w, h int) []float64 {
	out := make([]float64, w*h)

	magAt := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := mag[i]
			if m == 0 {
				continue
			}

			// Quantize direction to one of four neighbor axes.
			angle := dir[i] * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var a, b float64
			switch {
			case angle < 22.5 || angle >= 157.5: // horizontal gradient
				a, b = magAt(x-1, y), magAt(x+1, y)
			case angle < 67.5: // diagonal /
				a, b = magAt(x+1, y-1), magAt(x-1, y+1)
			case angle < 112.5: // vertical gradient
				a, b = magAt(x, y-1), magAt(x, y+1)
			default: // diagonal \
				a, b = magAt(x-1, y-1), magAt(x+1, y+1)
			}

			if m >= a && m >= b {
				out[i] = m
			}
		}
	}
	return out
}

// hysteresis keeps strong pixels and any weak pixels 8-connected to them.
func hysteresis(marks []uint8, w, h int) *frame.Binary {
	out := frame.NewBinary(w, h)
	stack := make([][2]int, 0, 256)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if marks[y*w+x] != pixelStrong {
				continue
			}
			if out.At(x, y) != 0 {
				continue
			}
			out.Set(x, y)
			stack = append(stack, [2]int{x, y})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p[0]+dx, p[1]+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						if marks[ny*w+nx] == pixelNone || out.At(nx, ny) != 0 {
							continue
						}
						out.Set(nx, ny)
						stack = append(stack, [2]int{nx, ny})
					}
				}
			}
		}
	}
	return out
}
