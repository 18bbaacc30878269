package gaze

import (
	"testing"

	"github.com/dudu/gazetrack/internal/detector"
)

func approx32(got, want, eps float32) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func boxApprox(got, want detector.BoundingBox, eps float32) bool {
	return approx32(got.X1, want.X1, eps) && approx32(got.Y1, want.Y1, eps) &&
		approx32(got.X2, want.X2, eps) && approx32(got.Y2, want.Y2, eps)
}

func TestEyeRegions(t *testing.T) {
	// 200x200 face at (100,150): eye line at 35% height, centers at 30%
	// and 70% width, squares 15% of width wide.
	face := detector.BoundingBox{X1: 100, Y1: 150, X2: 300, Y2: 350}
	left, right := EyeRegions(face, DefaultEyeConfig())

	wantLeft := detector.BoundingBox{X1: 145, Y1: 205, X2: 175, Y2: 235}
	wantRight := detector.BoundingBox{X1: 225, Y1: 205, X2: 255, Y2: 235}
	if !boxApprox(left, wantLeft, 1e-3) {
		t.Errorf("left eye = %+v, want %+v", left, wantLeft)
	}
	if !boxApprox(right, wantRight, 1e-3) {
		t.Errorf("right eye = %+v, want %+v", right, wantRight)
	}

	// Both squares share the eye line and size.
	if !approx32(left.Y1, right.Y1, 1e-4) || !approx32(left.Y2, right.Y2, 1e-4) {
		t.Error("eye squares are not on the same eye line")
	}
	if !approx32(left.Width(), right.Width(), 1e-4) {
		t.Error("eye squares differ in size")
	}
}

func TestEyeRegionsScaleWithFace(t *testing.T) {
	cfg := DefaultEyeConfig()
	small, _ := EyeRegions(detector.BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100}, cfg)
	large, _ := EyeRegions(detector.BoundingBox{X1: 0, Y1: 0, X2: 200, Y2: 200}, cfg)
	if !approx32(large.Width(), 2*small.Width(), 1e-3) {
		t.Errorf("eye width did not scale with face: %v vs %v", small.Width(), large.Width())
	}
}

func TestClampToFrame(t *testing.T) {
	tests := []struct {
		name string
		in   detector.BoundingBox
		want detector.BoundingBox
	}{
		{
			name: "inside untouched",
			in:   detector.BoundingBox{X1: 10, Y1: 10, X2: 50, Y2: 50},
			want: detector.BoundingBox{X1: 10, Y1: 10, X2: 50, Y2: 50},
		},
		{
			name: "spills left and top",
			in:   detector.BoundingBox{X1: -5, Y1: -8, X2: 30, Y2: 30},
			want: detector.BoundingBox{X1: 0, Y1: 0, X2: 30, Y2: 30},
		},
		{
			name: "spills right and bottom",
			in:   detector.BoundingBox{X1: 90, Y1: 90, X2: 130, Y2: 140},
			want: detector.BoundingBox{X1: 90, Y1: 90, X2: 100, Y2: 100},
		},
		{
			name: "fully outside collapses",
			in:   detector.BoundingBox{X1: 150, Y1: 150, X2: 180, Y2: 180},
			want: detector.BoundingBox{X1: 100, Y1: 100, X2: 100, Y2: 100},
		},
		{
			name: "fully outside negative side",
			in:   detector.BoundingBox{X1: -40, Y1: -40, X2: -10, Y2: -10},
			want: detector.BoundingBox{X1: 0, Y1: 0, X2: 0, Y2: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampToFrame(tt.in, 100, 100); got != tt.want {
				t.Errorf("ClampToFrame() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
