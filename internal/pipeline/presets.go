package pipeline

import "fmt"

// Brightness cut points for preset selection, mean pixel value.
const (
	brightFloor = 150
	normalFloor = 100
)

// DefaultConfig returns the normal-lighting threshold set for a 640x480
// source displayed at the same size.
func DefaultConfig() Config {
	return Config{
		BlurKernelSize:    5,
		EdgeLowThreshold:  50,
		EdgeHighThreshold: 150,

		MinFaceSize:    40,
		MaxFaceSize:    400,
		MinContourArea: 1500,
		AspectRatioMin: 0.5,
		AspectRatioMax: 2.0,
		FillRatioMin:   0.2,
		FillRatioMax:   0.9,
		ConvexityMin:   0.6,

		OverlapIoUThreshold: 0.3,
		MaxCandidates:       1,

		EyeYRatio:    0.35,
		LeftXRatio:   0.3,
		RightXRatio:  0.7,
		EyeSizeRatio: 0.15,

		GazeHistorySize: 10,
		ResetAfter:      40,

		DisplayWidth:  640,
		DisplayHeight: 480,
		MirrorInput:   true,
	}
}

// BrightConfig loosens the size gates and raises the edge thresholds for
// strong daylight, where contrast is high and shadows produce large blobs.
func BrightConfig() Config {
	cfg := DefaultConfig()
	cfg.BlurKernelSize = 7
	cfg.EdgeLowThreshold = 80
	cfg.EdgeHighThreshold = 200
	cfg.MinFaceSize = 50
	cfg.MinContourArea = 2000
	return cfg
}

// LowLightConfig lowers the thresholds and shrinks the gates for dim
// scenes, where gradients are weak and regions come out smaller.
func LowLightConfig() Config {
	cfg := DefaultConfig()
	cfg.BlurKernelSize = 3
	cfg.EdgeLowThreshold = 30
	cfg.EdgeHighThreshold = 90
	cfg.MinFaceSize = 30
	cfg.MinContourArea = 1000
	return cfg
}

// PresetFor returns a named threshold set.
func PresetFor(name string) (Config, error) {
	switch name {
	case "", "default", "normal":
		return DefaultConfig(), nil
	case "bright":
		return BrightConfig(), nil
	case "lowlight":
		return LowLightConfig(), nil
	}
	return Config{}, fmt.Errorf("unknown preset %q", name)
}

// PresetForBrightness picks a threshold set from a frame's mean brightness.
func PresetForBrightness(mean float64) Config {
	switch {
	case mean > brightFloor:
		return BrightConfig()
	case mean > normalFloor:
		return DefaultConfig()
	default:
		return LowLightConfig()
	}
}
