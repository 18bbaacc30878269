// facetest runs the face-candidate detector over a still image and prints
// what each validation gate did. Useful for tuning preset thresholds.
package main

import (
	"flag"
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"github.com/dudu/gazetrack/internal/detector"
	"github.com/dudu/gazetrack/internal/edge"
	"github.com/dudu/gazetrack/internal/frame"
	"github.com/dudu/gazetrack/internal/pipeline"
)

func main() {
	imagePath := flag.String("image", "", "Input image path (required)")
	preset := flag.String("preset", "default", "Threshold preset: default, bright, lowlight")
	flag.Parse()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --image flag is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*imagePath, *preset); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(imagePath, preset string) error {
	cfg, err := pipeline.PresetFor(preset)
	if err != nil {
		return err
	}

	img := gocv.IMRead(imagePath, gocv.IMReadGrayScale)
	if img.Empty() {
		return fmt.Errorf("failed to load image: %s", imagePath)
	}
	defer img.Close()

	g, err := frame.FromBytes(img.Cols(), img.Rows(), img.ToBytes())
	if err != nil {
		return err
	}

	det := detector.New(
		edge.Config{
			BlurKernelSize: cfg.BlurKernelSize,
			LowThreshold:   cfg.EdgeLowThreshold,
			HighThreshold:  cfg.EdgeHighThreshold,
		},
		detector.Config{
			MinSize:        cfg.MinFaceSize,
			MaxSize:        cfg.MaxFaceSize,
			MinArea:        cfg.MinContourArea,
			AspectRatioMin: cfg.AspectRatioMin,
			AspectRatioMax: cfg.AspectRatioMax,
			FillRatioMin:   cfg.FillRatioMin,
			FillRatioMax:   cfg.FillRatioMax,
			ConvexityMin:   cfg.ConvexityMin,
		},
		cfg.OverlapIoUThreshold,
		cfg.MaxCandidates,
	)

	cands, stats := det.Detect(g)

	fmt.Printf("Image: %s (%dx%d, mean brightness %.1f)\n",
		imagePath, g.Width, g.Height, g.MeanBrightness())
	fmt.Printf("Contours: %d  accepted: %d\n", stats.Total, stats.Accepted)
	fmt.Printf("Rejected: size=%d area=%d aspect=%d fill=%d convexity=%d\n",
		stats.RejectSize, stats.RejectArea, stats.RejectAspect, stats.RejectFill, stats.RejectConvexity)

	for i, c := range cands {
		r := c.Box.ToRect()
		fmt.Printf("  #%d: (%d,%d)-(%d,%d) %dx%d score=%.0f\n",
			i+1, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, r.Dx(), r.Dy(), c.Score)
	}
	if len(cands) == 0 {
		fmt.Println("  no candidates")
	}
	return nil
}
