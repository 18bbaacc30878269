package edge

import (
	"math"
	"testing"

	"github.com/dudu/gazetrack/internal/frame"
)

func testConfig() Config {
	return Config{BlurKernelSize: 5, LowThreshold: 50, HighThreshold: 150}
}

func TestBuildDegenerateInput(t *testing.T) {
	if m := Build(&frame.Gray{}, testConfig()); !m.Empty() {
		t.Error("Build on empty frame should return empty map")
	}
	if m := Build(nil, testConfig()); !m.Empty() {
		t.Error("Build on nil frame should return empty map")
	}
}

func TestBuildFlatFrameHasNoEdges(t *testing.T) {
	g := frame.NewGray(40, 40)
	for i := range g.Pix {
		g.Pix[i] = 128
	}
	m := Build(g, testConfig())
	if m.Count() != 0 {
		t.Errorf("flat frame produced %d edge pixels, want 0", m.Count())
	}
}

func TestBuildSquareProducesBoundaryEdges(t *testing.T) {
	// Bright square on a dark background: edges appear near the square
	// boundary, not in flat regions.
	g := frame.NewGray(60, 60)
	for i := range g.Pix {
		g.Pix[i] = 20
	}
	for y := 15; y < 45; y++ {
		for x := 15; x < 45; x++ {
			g.Set(x, y, 220)
		}
	}

	m := Build(g, testConfig())
	if m.Width != 60 || m.Height != 60 {
		t.Fatalf("edge map dims = %dx%d, want 60x60", m.Width, m.Height)
	}
	if m.Count() == 0 {
		t.Fatal("square produced no edge pixels")
	}

	// Every edge pixel sits near the contrast boundary.
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if m.At(x, y) == 0 {
				continue
			}
			dx := math.Min(math.Abs(float64(x-15)), math.Abs(float64(x-44)))
			dy := math.Min(math.Abs(float64(y-15)), math.Abs(float64(y-44)))
			if math.Min(dx, dy) > 4 {
				t.Fatalf("edge pixel (%d,%d) far from any boundary", x, y)
			}
		}
	}
}

func TestBuildEvenKernelRoundsUp(t *testing.T) {
	g := frame.NewGray(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x >= 10 {
				g.Set(x, y, 255)
			}
		}
	}
	// An even kernel size must not panic; it is bumped to the next odd.
	m := Build(g, Config{BlurKernelSize: 4, LowThreshold: 40, HighThreshold: 120})
	if m.Count() == 0 {
		t.Error("vertical step produced no edges")
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, size := range []int{3, 5, 7, 9} {
		k := gaussianKernel(size)
		if len(k) != size {
			t.Fatalf("kernel size = %d, want %d", len(k), size)
		}
		var sum float64
		for _, v := range k {
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("kernel(%d) sums to %v, want 1", size, sum)
		}
		// Symmetric around the center.
		for i := 0; i < size/2; i++ {
			if math.Abs(k[i]-k[size-1-i]) > 1e-12 {
				t.Errorf("kernel(%d) not symmetric at %d", size, i)
			}
		}
	}
}
