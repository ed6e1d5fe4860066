package main

import (
	"fmt"
	"io"
	"os"

	"go.viam.com/rdk/logging"
	"go.viam.com/utils"

	"github.com/erh/elsnr"
	"github.com/erh/elsnr/imgutils"
)

type arguments struct {
	Media string `flag:"media,default=media,usage=directory holding the images"`
	EL1   string `flag:"el1,default=EL1.jpg,usage=first EL image"`
	EL2   string `flag:"el2,default=EL2.jpg,usage=second EL image"`
	BG    string `flag:"bg,default=bg.jpg,usage=background image"`
	NoBG  bool   `flag:"no-bg,usage=do not subtract a background"`
	Crop  string `flag:"crop,usage=device region as x0 y0 x1 y1 joined by commas"`
	Debug bool   `flag:"debug,usage=debug logging"`
}

func main() {
	logger := logging.NewLogger("elsnr")
	err := realMain(os.Args, os.Stdout, logger)
	if err != nil {
		panic(err)
	}
}

func realMain(args []string, out io.Writer, logger logging.Logger) error {
	var a arguments
	if err := utils.ParseFlags(args, &a); err != nil {
		return err
	}

	if a.Debug {
		logger.SetLevel(logging.DEBUG)
	}

	names := elsnr.SetNames{Image1: a.EL1, Image2: a.EL2, Background: a.BG}
	if a.NoBG {
		names.Background = ""
	}

	crop, err := elsnr.ParseCrop(a.Crop)
	if err != nil {
		return err
	}

	set, err := elsnr.LoadSet(a.Media, names, crop, logger)
	if err != nil {
		return err
	}

	if a.Debug {
		for _, x := range []*imgutils.Array{set.Image1, set.Image2, set.Background} {
			if x == nil {
				continue
			}
			avg, err := imgutils.ComputeGrayscaleAverage(x)
			if err != nil {
				return err
			}
			logger.Debugf("shape: %v mean: %0.3f", x.Shape, avg)
		}
	}

	stats, err := set.Compute()
	if err != nil {
		return err
	}
	logger.Debugf("signal: %v noise: %v", stats.Signal, stats.Noise)

	_, err = fmt.Fprintln(out, "Signal-to-noise ratio =", stats.SNR)
	return err
}
