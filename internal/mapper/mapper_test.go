package mapper

import (
	"image"
	"math"
	"testing"

	"github.com/dudu/gazetrack/internal/detector"
)

func TestPointLandscapeIntoPortrait(t *testing.T) {
	// 640x480 source into a 320x640 view: width fits (scale 0.5) and the
	// scaled 240px height is centered with 200px above and below.
	m := New(640, 480, 320, 640, false)

	x, y := m.Point(0, 0)
	if x != 0 || y != 200 {
		t.Errorf("Point(0,0) = (%v,%v), want (0,200)", x, y)
	}
	x, y = m.Point(640, 480)
	if x != 320 || y != 440 {
		t.Errorf("Point(640,480) = (%v,%v), want (320,440)", x, y)
	}
	x, y = m.Point(320, 240)
	if x != 160 || y != 320 {
		t.Errorf("Point(320,240) = (%v,%v), want view center (160,320)", x, y)
	}
}

func TestPointIdentity(t *testing.T) {
	m := New(640, 480, 640, 480, false)
	x, y := m.Point(123, 456)
	if x != 123 || y != 456 {
		t.Errorf("identity Point = (%v,%v), want (123,456)", x, y)
	}
}

func TestPointPortraitIntoLandscape(t *testing.T) {
	// 480x640 source into 640x480: height fits (scale 0.75), 360px scaled
	// width centered horizontally with 140px margins.
	m := New(480, 640, 640, 480, false)
	x, y := m.Point(0, 0)
	if x != 140 || y != 0 {
		t.Errorf("Point(0,0) = (%v,%v), want (140,0)", x, y)
	}
	x, y = m.Point(480, 640)
	if x != 500 || y != 480 {
		t.Errorf("Point(480,640) = (%v,%v), want (500,480)", x, y)
	}
}

func TestPointMirror(t *testing.T) {
	m := New(640, 480, 640, 480, true)
	x, y := m.Point(100, 50)
	if x != 540 || y != 50 {
		t.Errorf("mirrored Point(100,50) = (%v,%v), want (540,50)", x, y)
	}
	// Mirroring leaves the vertical center line fixed.
	x, _ = m.Point(320, 0)
	if x != 320 {
		t.Errorf("mirrored center x = %v, want 320", x)
	}
}

func TestUnmapInverts(t *testing.T) {
	mappings := []Mapping{
		New(640, 480, 320, 640, false),
		New(640, 480, 1920, 1080, false),
		New(640, 480, 640, 480, true),
		New(480, 640, 640, 480, true),
	}
	points := [][2]float64{{0, 0}, {640, 480}, {100, 350}, {13.5, 77.25}}

	for _, m := range mappings {
		for _, p := range points {
			dx, dy := m.Point(p[0], p[1])
			sx, sy := m.Unmap(dx, dy)
			if math.Abs(sx-p[0]) > 1e-9 || math.Abs(sy-p[1]) > 1e-9 {
				t.Errorf("%+v: Unmap(Point(%v,%v)) = (%v,%v)", m, p[0], p[1], sx, sy)
			}
		}
	}
}

func TestRect(t *testing.T) {
	m := New(640, 480, 320, 640, false)
	got := m.Rect(detector.BoundingBox{X1: 100, Y1: 100, X2: 300, Y2: 200})
	want := detector.BoundingBox{X1: 50, Y1: 250, X2: 150, Y2: 300}
	if got != want {
		t.Errorf("Rect() = %+v, want %+v", got, want)
	}
}

func TestRectMirrorNormalizes(t *testing.T) {
	m := New(640, 480, 640, 480, true)
	got := m.Rect(detector.BoundingBox{X1: 100, Y1: 100, X2: 200, Y2: 200})
	want := detector.BoundingBox{X1: 440, Y1: 100, X2: 540, Y2: 200}
	if got != want {
		t.Errorf("mirrored Rect() = %+v, want %+v", got, want)
	}
	if got.X1 > got.X2 || got.Y1 > got.Y2 {
		t.Error("mirrored Rect() not normalized")
	}
}

func TestViewport(t *testing.T) {
	tests := []struct {
		name string
		m    Mapping
		want image.Rectangle
	}{
		{name: "letterboxed portrait", m: New(640, 480, 320, 640, false), want: image.Rect(0, 200, 320, 440)},
		{name: "identity", m: New(640, 480, 640, 480, false), want: image.Rect(0, 0, 640, 480)},
		{name: "pillarboxed landscape", m: New(480, 640, 640, 480, false), want: image.Rect(140, 0, 500, 480)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Viewport(); got != tt.want {
				t.Errorf("Viewport() = %v, want %v", got, tt.want)
			}
		})
	}

	// Mirroring moves points but not the viewport itself.
	plain := New(640, 480, 320, 640, false).Viewport()
	mirrored := New(640, 480, 320, 640, true).Viewport()
	if plain != mirrored {
		t.Errorf("mirrored viewport %v differs from %v", mirrored, plain)
	}
}

func TestMirrorMatchesFlippedFrame(t *testing.T) {
	// A mirrored mapping must send a source point where a plain mapping
	// sends its horizontally flipped counterpart. The preview relies on
	// this: it flips the frame pixels and draws mirrored coordinates on
	// top, so any divergence puts overlays on the wrong side.
	mirrored := New(640, 480, 320, 640, true)
	plain := New(640, 480, 320, 640, false)

	for _, x := range []float64{0, 100, 320, 540, 640} {
		mx, my := mirrored.Point(x, 120)
		fx, fy := plain.Point(640-x, 120)
		if mx != fx || my != fy {
			t.Errorf("Point(%v,120): mirrored (%v,%v), flipped-plain (%v,%v)", x, mx, my, fx, fy)
		}
	}
}

func TestDegenerateDimensions(t *testing.T) {
	m := New(0, 0, 640, 480, false)
	x, y := m.Point(10, 20)
	if x != 10 || y != 20 {
		t.Errorf("degenerate mapping Point = (%v,%v), want passthrough (10,20)", x, y)
	}
}
