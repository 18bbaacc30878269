package ui

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"github.com/dudu/gazetrack/internal/mapper"
	"github.com/dudu/gazetrack/internal/pipeline"
)

var (
	faceColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	eyeColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	gazeColor = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	textColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// Window manages the preview display
type Window struct {
	window     *gocv.Window
	name       string
	lastFrame  time.Time
	frameCount int
	fps        float64
}

// NewWindow creates a new preview window
func NewWindow(name string) *Window {
	window := gocv.NewWindow(name)
	// Force window to appear on macOS
	window.ResizeWindow(640, 480)
	window.MoveWindow(100, 100)
	return &Window{
		window:    window,
		name:      name,
		lastFrame: time.Now(),
	}
}

// BuildCanvas paints the camera frame into a destination-space canvas
// through the same transform the pipeline maps its results with, so overlay
// coordinates and pixels line up: the frame is flipped when the mapping
// mirrors, and aspect-fit into the viewport. Letterbox bars stay black.
func BuildCanvas(src *gocv.Mat, dst *gocv.Mat, m mapper.Mapping) {
	if src.Empty() {
		return
	}
	if m.Mirror {
		gocv.Flip(*src, src, 1)
	}

	dw, dh := int(m.DestWidth), int(m.DestHeight)
	if dw <= 0 || dh <= 0 || (dw == src.Cols() && dh == src.Rows()) {
		src.CopyTo(dst)
		return
	}

	if dst.Cols() != dw || dst.Rows() != dh || dst.Type() != src.Type() {
		dst.Close()
		*dst = gocv.NewMatWithSize(dh, dw, src.Type())
	}

	vp := m.Viewport()
	if vp.Dx() <= 0 || vp.Dy() <= 0 {
		return
	}
	region := dst.Region(vp)
	gocv.Resize(*src, &region, image.Pt(vp.Dx(), vp.Dy()), 0, 0, gocv.InterpolationLinear)
	region.Close()
}

// DrawOverlay draws the detected face, eye regions and smoothed gaze point
// on the frame. Absence of a detected face suppresses the rectangles; a
// held gaze point is still drawn while it remains valid.
func DrawOverlay(m *gocv.Mat, res pipeline.Result) {
	if res.FaceFound {
		gocv.Rectangle(m, res.Face.ToRect(), faceColor, 2)
		gocv.Rectangle(m, res.LeftEye.ToRect(), eyeColor, 1)
		gocv.Rectangle(m, res.RightEye.ToRect(), eyeColor, 1)
	}
	if res.GazeValid {
		gocv.Circle(m, image.Pt(int(res.Gaze.X), int(res.Gaze.Y)), 6, gazeColor, -1)
	}
}

// Show displays a frame and updates FPS counter
func (w *Window) Show(m *gocv.Mat) {
	w.frameCount++
	now := time.Now()

	// Calculate FPS every second
	elapsed := now.Sub(w.lastFrame)
	if elapsed >= time.Second {
		w.fps = float64(w.frameCount) / elapsed.Seconds()
		w.frameCount = 0
		w.lastFrame = now
	}

	// Draw FPS on frame
	fpsText := fmt.Sprintf("FPS: %.1f", w.fps)
	gocv.PutText(m, fpsText, image.Pt(10, 30),
		gocv.FontHersheyPlain, 2, textColor, 2)

	w.window.IMShow(*m)
}

// WaitKey waits for key press, returns key code or -1
func (w *Window) WaitKey(delayMs int) int {
	return w.window.WaitKey(delayMs)
}

// FPS returns current frames per second
func (w *Window) FPS() float64 {
	return w.fps
}

// Close closes the window
func (w *Window) Close() error {
	if w.window != nil {
		return w.window.Close()
	}
	return nil
}
