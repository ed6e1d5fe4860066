package elsnr

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/erh/elsnr/imgutils"
)

// NoiseFactor scales the summed absolute difference of the two images.
var NoiseFactor = math.Sqrt(0.5) * math.Pow(2/math.Pi, -0.5)

type Stats struct {
	Signal float64
	Noise  float64
	SNR    float64
}

// ComputeSNR calculates the averaged signal-to-noise ratio SNR50 as defined by
// IEC NP 60904-13. image1 and image2 are EL images of the same PV device,
// background may be nil.
//
// All images should be cut to the shape of the PV device, otherwise the SNR
// will be influenced by the background.
func ComputeSNR(image1, image2, background *imgutils.Array) (float64, error) {
	s, err := Compute(image1, image2, background)
	if err != nil {
		return 0, err
	}
	return s.SNR, nil
}

// Compute is ComputeSNR returning the signal and noise terms too.
// A zero noise term gives an infinite or NaN SNR, not an error.
func Compute(image1, image2, background *imgutils.Array) (Stats, error) {
	ref, err := imgutils.ShapeOf(image1)
	if err != nil {
		return Stats{}, errors.Wrap(err, "image1")
	}

	i1, err := imgutils.Prepare(image1, ref)
	if err != nil {
		return Stats{}, errors.Wrap(err, "image1")
	}
	i2, err := imgutils.Prepare(image2, ref)
	if err != nil {
		return Stats{}, errors.Wrap(err, "image2")
	}

	var mean mat.Dense
	mean.Add(i1, i2)
	mean.Scale(0.5, &mean)

	if background != nil {
		bg, err := imgutils.Prepare(background, ref)
		if err != nil {
			return Stats{}, errors.Wrap(err, "background")
		}
		mean.Sub(&mean, bg)
	}

	var diff mat.Dense
	diff.Sub(i1, i2)
	diff.Apply(func(_, _ int, v float64) float64 { return math.Abs(v) }, &diff)

	s := Stats{
		Signal: mat.Sum(&mean),
		Noise:  mat.Sum(&diff) * NoiseFactor,
	}
	s.SNR = s.Signal / s.Noise
	return s, nil
}
