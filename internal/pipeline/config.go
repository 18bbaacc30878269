package pipeline

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds the full pipeline configuration, fixed at construction time.
type Config struct {
	// Edge detection
	BlurKernelSize    int     `validate:"gte=3"` // must also be odd
	EdgeLowThreshold  float64 `validate:"gte=0"`
	EdgeHighThreshold float64 `validate:"gtefield=EdgeLowThreshold"`

	// Candidate validation
	MinFaceSize    float32 `validate:"gt=0"`
	MaxFaceSize    float32 `validate:"gtefield=MinFaceSize"`
	MinContourArea float32 `validate:"gte=0"`
	AspectRatioMin float32 `validate:"gt=0"`
	AspectRatioMax float32 `validate:"gtefield=AspectRatioMin"`
	FillRatioMin   float32 `validate:"gte=0,lte=1"`
	FillRatioMax   float32 `validate:"gtefield=FillRatioMin,lte=1"`
	ConvexityMin   float32 `validate:"gte=0,lte=1"`

	// Overlap resolution
	OverlapIoUThreshold float32 `validate:"gte=0,lte=1"`
	MaxCandidates       int     `validate:"gte=1"`

	// Eye geometry
	EyeYRatio    float32 `validate:"gt=0,lt=1"`
	LeftXRatio   float32 `validate:"gt=0,lt=1"`
	RightXRatio  float32 `validate:"gt=0,lt=1"`
	EyeSizeRatio float32 `validate:"gt=0,lt=1"`

	// Temporal smoothing
	GazeHistorySize int `validate:"gte=1"`
	// ResetAfter is the number of consecutive dropout frames before the
	// gaze history is cleared.
	ResetAfter int `validate:"gte=1"`

	// Output mapping
	DisplayWidth  int `validate:"gte=1"`
	DisplayHeight int `validate:"gte=1"`
	MirrorInput   bool
}

var validate = validator.New()

// Validate checks structural constraints on the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.BlurKernelSize%2 == 0 {
		return fmt.Errorf("invalid config: BlurKernelSize must be odd, got %d", c.BlurKernelSize)
	}
	return nil
}
