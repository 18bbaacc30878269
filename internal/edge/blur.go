package edge

import (
	"math"

	"github.com/dudu/gazetrack/internal/frame"
)

// gaussianKernel builds a normalized 1D Gaussian kernel of the given odd size.
// Sigma follows the usual size-derived default: 0.3*((size-1)*0.5 - 1) + 0.8.
func gaussianKernel(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	if sigma <= 0 {
		sigma = 0.8
	}
	kernel := make([]float64, size)
	half := size / 2
	var sum float64
	for i := range kernel {
		d := float64(i - half)
		kernel[i] = gaussian(d, sigma)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func gaussian(d, sigma float64) float64 {
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// blur applies a separable Gaussian smoothing pass with edge clamping.
func blur(g *frame.Gray, kernelSize int) []float64 {
	w, h := g.Width, g.Height
	kernel := gaussianKernel(kernelSize)
	half := kernelSize / 2

	tmp := make([]float64, w*h)
	out := make([]float64, w*h)

	// Horizontal pass
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for k := -half; k <= half; k++ {
				sx := clampInt(x+k, 0, w-1)
				acc += float64(g.Pix[y*w+sx]) * kernel[k+half]
			}
			tmp[y*w+x] = acc
		}
	}

	// Vertical pass
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for k := -half; k <= half; k++ {
				sy := clampInt(y+k, 0, h-1)
				acc += tmp[sy*w+x] * kernel[k+half]
			}
			out[y*w+x] = acc
		}
	}

	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
