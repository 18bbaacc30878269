package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"gocv.io/x/gocv"

	"github.com/dudu/gazetrack/internal/camera"
	"github.com/dudu/gazetrack/internal/gaze"
	"github.com/dudu/gazetrack/internal/inference"
	"github.com/dudu/gazetrack/internal/log"
	"github.com/dudu/gazetrack/internal/mapper"
	"github.com/dudu/gazetrack/internal/pipeline"
	"github.com/dudu/gazetrack/internal/ui"
)

func init() {
	// Lock the main goroutine to the main OS thread.
	// This is required on macOS for OpenCV's highgui (window creation).
	runtime.LockOSThread()
}

type Config struct {
	CameraIndex   int
	Preset        string
	ModelPath     string
	Mirror        bool
	DisplayWidth  int
	DisplayHeight int
	TargetFPS     int
	Preview       bool
}

func main() {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()
	log.New()

	config := parseFlags()

	if err := run(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() Config {
	config := Config{}

	flag.IntVar(&config.CameraIndex, "camera", 0, "Camera device index")
	flag.IntVar(&config.CameraIndex, "c", 0, "Camera device index (shorthand)")
	flag.StringVar(&config.Preset, "preset", envOr("GAZETRACK_PRESET", "default"),
		"Threshold preset: default, bright, lowlight or auto")
	flag.StringVar(&config.ModelPath, "model", os.Getenv("GAZETRACK_MODEL"),
		"Gaze estimator ONNX model (empty: fixed center estimate)")
	flag.StringVar(&config.ModelPath, "m", os.Getenv("GAZETRACK_MODEL"),
		"Gaze estimator ONNX model (shorthand)")
	flag.BoolVar(&config.Mirror, "mirror", true, "Mirror input horizontally (front-facing capture)")
	flag.IntVar(&config.DisplayWidth, "width", 0, "Destination view width (0: camera width)")
	flag.IntVar(&config.DisplayHeight, "height", 0, "Destination view height (0: camera height)")
	flag.IntVar(&config.TargetFPS, "fps", 30, "Target frames per second")
	flag.BoolVar(&config.Preview, "preview", true, "Show preview window")
	flag.BoolVar(&config.Preview, "p", true, "Show preview window (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gazetrack - contrast-based gaze tracking\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gazetrack [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gazetrack --model models/gaze.onnx\n")
		fmt.Fprintf(os.Stderr, "  gazetrack --preset lowlight --mirror=false\n")
	}

	flag.Parse()
	return config
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(config Config) error {
	log.Info(log.Fields{"camera": config.CameraIndex, "preset": config.Preset}, "gazetrack starting")

	cam, err := camera.NewCapture(config.CameraIndex, config.TargetFPS)
	if err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	defer cam.Close()
	log.Info(log.Fields{"width": cam.Width(), "height": cam.Height()}, "camera opened")

	buf := gocv.NewMat()
	defer buf.Close()

	cfg, err := resolvePreset(config, cam, &buf)
	if err != nil {
		return err
	}
	if config.DisplayWidth <= 0 {
		config.DisplayWidth = cam.Width()
	}
	if config.DisplayHeight <= 0 {
		config.DisplayHeight = cam.Height()
	}
	cfg.MirrorInput = config.Mirror
	cfg.DisplayWidth = config.DisplayWidth
	cfg.DisplayHeight = config.DisplayHeight

	estimator, err := buildEstimator(config.ModelPath)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, estimator)
	if err != nil {
		estimator.Close()
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Close()

	runner := pipeline.NewRunner(p)
	defer runner.Stop()

	var window *ui.Window
	if config.Preview {
		window = ui.NewWindow("gazetrack")
		defer window.Close()
	}

	// Results are in destination space; the preview canvas is rendered
	// through the same mapping so overlays land on the pixels they mark.
	view := mapper.New(cam.Width(), cam.Height(),
		cfg.DisplayWidth, cfg.DisplayHeight, cfg.MirrorInput)
	canvas := gocv.NewMat()
	defer canvas.Close()

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info(nil, "running, press 'q' to quit")

	var last pipeline.Result
	for {
		select {
		case <-sigChan:
			log.Info(nil, "shutting down")
			return nil
		default:
		}

		g, ok := cam.ReadGray(&buf)
		if !ok {
			continue
		}
		runner.Submit(g)

		select {
		case res := <-runner.Results():
			last = res
		default:
			// Keep drawing the previous result while a frame is in flight.
		}

		if window != nil {
			ui.BuildCanvas(&buf, &canvas, view)
			ui.DrawOverlay(&canvas, last)
			window.Show(&canvas)
			key := window.WaitKey(1)
			if key == 'q' || key == 27 {
				log.Info(nil, "quitting")
				return nil
			}
		}
	}
}

// resolvePreset returns the configured threshold set, probing one frame's
// mean brightness when the preset is "auto".
func resolvePreset(config Config, cam *camera.Capture, buf *gocv.Mat) (pipeline.Config, error) {
	if config.Preset != "auto" {
		cfg, err := pipeline.PresetFor(config.Preset)
		if err != nil {
			return pipeline.Config{}, err
		}
		return cfg, nil
	}

	g, ok := cam.ReadGray(buf)
	if !ok {
		log.Warn(nil, "no frame for brightness probe, using default preset")
		return pipeline.DefaultConfig(), nil
	}
	mean := g.MeanBrightness()
	log.Info(log.Fields{"brightness": fmt.Sprintf("%.1f", mean)}, "auto preset selected")
	return pipeline.PresetForBrightness(mean), nil
}

// buildEstimator loads the ONNX gaze model, or falls back to a fixed
// screen-center estimate when none is configured.
func buildEstimator(modelPath string) (pipeline.GazeEstimator, error) {
	if modelPath == "" {
		log.Warn(nil, "no gaze model configured, using fixed center estimate")
		return gaze.NewFixed(gaze.Point{X: 0.5, Y: 0.5}), nil
	}

	if err := inference.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize inference: %w", err)
	}
	estimator, err := gaze.NewONNX(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load gaze model: %w", err)
	}
	return estimator, nil
}
