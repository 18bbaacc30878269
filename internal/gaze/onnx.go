package gaze

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/dudu/gazetrack/internal/frame"
	"github.com/dudu/gazetrack/internal/inference"
)

// CropSize is the estimator input resolution per eye.
const CropSize = 64

// ONNX runs a gaze regression model over two stacked eye crops. The model
// takes a [1,2,64,64] tensor, each channel normalized to [-1,1] via
// (value-127.5)/127.5, and returns two floats.
type ONNX struct {
	session *inference.Session
}

// NewONNX creates an estimator from an ONNX model path.
func NewONNX(modelPath string) (*ONNX, error) {
	session, err := inference.NewSession(modelPath, []string{"eyes"}, []string{"gaze"})
	if err != nil {
		return nil, fmt.Errorf("failed to create gaze session: %w", err)
	}
	return &ONNX{session: session}, nil
}

// Estimate resamples both crops to CropSize and runs the model.
func (o *ONNX) Estimate(left, right *frame.Gray) (Point, error) {
	if left.Empty() || right.Empty() {
		return Point{}, fmt.Errorf("empty eye crop")
	}

	input := make([]float32, 2*CropSize*CropSize)
	fillChannel(input[:CropSize*CropSize], left)
	fillChannel(input[CropSize*CropSize:], right)

	inputTensor, err := inference.CreateTensor([]int64{1, 2, CropSize, CropSize}, input)
	if err != nil {
		return Point{}, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputTensor, err := inference.CreateEmptyTensor[float32]([]int64{1, 2})
	if err != nil {
		return Point{}, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	if err := o.session.Run([]ort.Value{inputTensor}, []ort.Value{outputTensor}); err != nil {
		return Point{}, fmt.Errorf("inference failed: %w", err)
	}

	out := outputTensor.GetData()
	if len(out) < 2 {
		return Point{}, fmt.Errorf("unexpected output length %d", len(out))
	}
	return Point{X: float64(out[0]), Y: float64(out[1])}, nil
}

// fillChannel writes one normalized CropSize x CropSize channel.
func fillChannel(dst []float32, crop *frame.Gray) {
	resized := crop
	if crop.Width != CropSize || crop.Height != CropSize {
		resized = crop.ResizeTo(CropSize, CropSize)
	}
	for i, v := range resized.Pix {
		dst[i] = (float32(v) - 127.5) / 127.5
	}
}

// Close releases the model session.
func (o *ONNX) Close() error {
	if o.session != nil {
		return o.session.Destroy()
	}
	return nil
}
