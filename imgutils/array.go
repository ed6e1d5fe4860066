package imgutils

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

var (
	ErrTypeMismatch  = errors.New("image is not a numeric array")
	ErrShapeMismatch = errors.New("image ill shaped")
	ErrChannelCount  = errors.New("only grayscale or 3 channel images are accepted")
)

// Number is any element type an Array can be built from.
type Number interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~float32 | ~float64
}

// Array is a dense row-major buffer of shape height x width, or
// height x width x channels with the channel index varying fastest.
type Array struct {
	Shape []int
	Data  []float64
}

// Shape is the spatial size every image of one computation has to share.
type Shape struct {
	Height int
	Width  int
}

// NewArray copies data into a float64 Array. The shape is not checked here,
// Prepare does that.
func NewArray[T Number](shape []int, data []T) *Array {
	a := &Array{
		Shape: append([]int(nil), shape...),
		Data:  make([]float64, len(data)),
	}
	for i, v := range data {
		a.Data[i] = float64(v)
	}
	return a
}

// Fill returns an array of the given shape with every element set to v.
func Fill(v float64, shape ...int) *Array {
	n := 1
	for _, s := range shape {
		n *= s
	}
	a := &Array{Shape: append([]int(nil), shape...), Data: make([]float64, n)}
	for i := range a.Data {
		a.Data[i] = v
	}
	return a
}

// ZerosLike returns a zero array with the same shape as a.
func ZerosLike(a *Array) *Array {
	return Fill(0, a.Shape...)
}

func (a *Array) Dims() int {
	return len(a.Shape)
}

func (a *Array) check() error {
	if a == nil {
		return errors.Wrap(ErrTypeMismatch, "nil array")
	}
	if len(a.Shape) < 2 {
		return errors.Wrapf(ErrShapeMismatch, "%v", a.Shape)
	}
	n := 1
	for _, s := range a.Shape {
		if s <= 0 {
			return errors.Wrapf(ErrTypeMismatch, "bad dimension in shape %v", a.Shape)
		}
		if s > len(a.Data)/n {
			return errors.Wrapf(ErrTypeMismatch, "shape %v is larger than its %d values", a.Shape, len(a.Data))
		}
		n *= s
	}
	if n != len(a.Data) {
		return errors.Wrapf(ErrTypeMismatch, "shape %v needs %d values, have %d", a.Shape, n, len(a.Data))
	}
	return nil
}

// ShapeOf returns the spatial shape of a, which becomes the reference for
// the rest of a computation.
func ShapeOf(a *Array) (Shape, error) {
	if err := a.check(); err != nil {
		return Shape{}, err
	}
	return Shape{Height: a.Shape[0], Width: a.Shape[1]}, nil
}

// FromImage converts a decoded image to 8 bit values. Gray images become 2-D,
// everything else becomes 3 channels in blue, green, red order.
func FromImage(img image.Image) *Array {
	b := img.Bounds()
	h, w := b.Dy(), b.Dx()

	switch g := img.(type) {
	case *image.Gray:
		a := &Array{Shape: []int{h, w}, Data: make([]float64, 0, h*w)}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				a.Data = append(a.Data, float64(g.GrayAt(x, y).Y))
			}
		}
		return a
	case *image.Gray16:
		a := &Array{Shape: []int{h, w}, Data: make([]float64, 0, h*w)}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				a.Data = append(a.Data, float64(g.Gray16At(x, y).Y>>8))
			}
		}
		return a
	}

	a := &Array{Shape: []int{h, w, 3}, Data: make([]float64, 0, h*w*3)}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			a.Data = append(a.Data, float64(c.B), float64(c.G), float64(c.R))
		}
	}
	return a
}
