package elsnr

import (
	"image"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/rimage"

	"github.com/erh/elsnr/imgutils"
)

// SetNames are the file names of one measurement, relative to its directory.
// An empty Background means there is no background image.
type SetNames struct {
	Image1     string
	Image2     string
	Background string
}

type Set struct {
	Image1     *imgutils.Array
	Image2     *imgutils.Array
	Background *imgutils.Array
}

func (s Set) Compute() (Stats, error) {
	return Compute(s.Image1, s.Image2, s.Background)
}

// ParseCrop reads "x0,y0,x1,y1". An empty string is no crop.
func ParseCrop(s string) (*image.Rectangle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, errors.Errorf("crop needs x0,y0,x1,y1, got [%s]", s)
	}

	v := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "bad crop value [%s]", p)
		}
		v[i] = n
	}

	r := image.Rect(v[0], v[1], v[2], v[3])
	if r.Empty() {
		return nil, errors.Errorf("crop %v is empty", r)
	}
	return &r, nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

type croppedImage struct {
	image.Image
	r image.Rectangle
}

func (c croppedImage) Bounds() image.Rectangle {
	return c.r
}

func cropImage(img image.Image, r image.Rectangle) (image.Image, error) {
	if !r.In(img.Bounds()) {
		return nil, errors.Errorf("crop %v outside of image %v", r, img.Bounds())
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(r), nil
	}
	return croppedImage{img, r}, nil
}

// LoadImage decodes fn and optionally cuts it down to crop, which should be
// the outline of the PV device.
func LoadImage(fn string, crop *image.Rectangle) (*imgutils.Array, error) {
	img, err := rimage.ReadImageFromFile(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", fn)
	}

	if crop != nil {
		img, err = cropImage(img, *crop)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot crop %s", fn)
		}
	}

	return imgutils.FromImage(img), nil
}

func LoadSet(dir string, names SetNames, crop *image.Rectangle, logger logging.Logger) (Set, error) {
	var s Set
	var err error

	load := func(name string) (*imgutils.Array, error) {
		fn := filepath.Join(dir, name)
		a, err := LoadImage(fn, crop)
		if err != nil {
			return nil, err
		}
		logger.Debugf("loaded %s shape: %v", fn, a.Shape)
		return a, nil
	}

	s.Image1, err = load(names.Image1)
	if err != nil {
		return s, err
	}

	s.Image2, err = load(names.Image2)
	if err != nil {
		return s, err
	}

	if names.Background != "" {
		s.Background, err = load(names.Background)
		if err != nil {
			return s, err
		}
	}

	return s, nil
}
