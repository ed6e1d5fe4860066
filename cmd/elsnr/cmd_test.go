package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"go.viam.com/rdk/logging"
	"go.viam.com/test"
)

func writeGray(t *testing.T, fn string, vals []uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	for i, v := range vals {
		img.SetGray(i%2, i/2, color.Gray{Y: v})
	}
	f, err := os.Create(fn)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	test.That(t, png.Encode(f, img), test.ShouldBeNil)
}

func TestRealMain(t *testing.T) {
	logger := logging.NewTestLogger(t)
	dir := t.TempDir()

	writeGray(t, filepath.Join(dir, "a.png"), []uint8{10, 10, 10, 10})
	writeGray(t, filepath.Join(dir, "b.png"), []uint8{20, 20, 20, 20})
	writeGray(t, filepath.Join(dir, "bg.png"), []uint8{0, 0, 0, 0})

	var out bytes.Buffer
	err := realMain([]string{"elsnr", "-media", dir, "-el1", "a.png", "-el2", "b.png", "-bg", "bg.png", "-debug"}, &out, logger)
	test.That(t, err, test.ShouldBeNil)

	line := strings.TrimSpace(out.String())
	test.That(t, line, test.ShouldStartWith, "Signal-to-noise ratio = ")
	v, err := strconv.ParseFloat(strings.TrimPrefix(line, "Signal-to-noise ratio = "), 64)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldAlmostEqual, 1.69257, 1e-5)

	out.Reset()
	err = realMain([]string{"elsnr", "-media", dir, "-el1", "a.png", "-el2", "b.png", "-no-bg", "-crop", "0,0,1,1"}, &out, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldStartWith, "Signal-to-noise ratio = ")

	err = realMain([]string{"elsnr", "-media", dir}, &out, logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRealMainDefaultNames(t *testing.T) {
	logger := logging.NewTestLogger(t)
	dir := t.TempDir()

	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 90
	}
	for _, name := range []string{"EL1.jpg", "EL2.jpg"} {
		f, err := os.Create(filepath.Join(dir, name))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, jpeg.Encode(f, img, nil), test.ShouldBeNil)
		test.That(t, f.Close(), test.ShouldBeNil)
	}

	var out bytes.Buffer
	err := realMain([]string{"elsnr", "-media", dir, "-no-bg"}, &out, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.TrimSpace(out.String()), test.ShouldEqual, "Signal-to-noise ratio = +Inf")

	// bg.jpg is the default background and is missing
	err = realMain([]string{"elsnr", "-media", dir}, &out, logger)
	test.That(t, err, test.ShouldNotBeNil)
}
