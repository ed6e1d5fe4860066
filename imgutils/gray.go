package imgutils

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// GrayWeights are applied to channels 0, 1, 2 in the order they are stored.
// For blue, green, red data this is the usual luma.
var GrayWeights = [3]float64{0.114, 0.587, 0.299}

// Prepare validates img against ref and returns it as a single channel
// float64 grid. img is not modified.
func Prepare(img *Array, ref Shape) (*mat.Dense, error) {
	if err := img.check(); err != nil {
		return nil, err
	}
	if d := img.Dims(); d != 2 && d != 3 {
		return nil, errors.Wrapf(ErrShapeMismatch, "%v", img.Shape)
	}
	if img.Shape[0] != ref.Height || img.Shape[1] != ref.Width {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"all input images need to have the same resolution: %dx%d != %v", ref.Height, ref.Width, img.Shape)
	}

	if img.Dims() == 2 {
		data := make([]float64, len(img.Data))
		copy(data, img.Data)
		return mat.NewDense(ref.Height, ref.Width, data), nil
	}

	if img.Shape[2] != 3 {
		return nil, errors.Wrapf(ErrChannelCount, "%v", img.Shape)
	}

	wsum := GrayWeights[0] + GrayWeights[1] + GrayWeights[2]
	data := make([]float64, ref.Height*ref.Width)
	for i := range data {
		px := img.Data[i*3 : i*3+3]
		data[i] = (px[0]*GrayWeights[0] + px[1]*GrayWeights[1] + px[2]*GrayWeights[2]) / wsum
	}
	return mat.NewDense(ref.Height, ref.Width, data), nil
}

// ComputeGrayscaleAverage is the mean gray intensity of img.
func ComputeGrayscaleAverage(img *Array) (float64, error) {
	ref, err := ShapeOf(img)
	if err != nil {
		return 0, err
	}
	g, err := Prepare(img, ref)
	if err != nil {
		return 0, err
	}
	return mat.Sum(g) / float64(ref.Height*ref.Width), nil
}
