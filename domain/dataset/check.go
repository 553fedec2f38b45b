package dataset

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/image/font/basicfont"

	"github.com/soocke/boxlabel-go/domain/imageio"
)

// CheckOptions controls dataset check rendering.
type CheckOptions struct {
	OutDir    string
	Ext       string // jpg, png or webp
	Quality   int
	LineWidth float64
	// Color returns the stroke color for a label; nil draws everything green.
	Color func(label string) color.Color
}

// Check draws every instance's boxes and labels onto its image and writes the
// result to OutDir as 1.<ext>, 2.<ext>, ... in instance order. Images that
// fail to load are skipped and reported in the returned error.
func Check(instances []Instance, opts CheckOptions, logger *slog.Logger) (int, error) {
	if opts.OutDir == "" {
		opts.OutDir = "dataset_check"
	}
	if opts.Ext == "" {
		opts.Ext = "jpg"
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 2
	}
	if opts.Color == nil {
		opts.Color = func(string) color.Color { return color.RGBA{G: 0xff, A: 0xff} }
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return 0, errors.Wrap(err, "create check dir")
	}
	var errs error
	written := 0
	for i, inst := range instances {
		img, err := imageio.Load(inst.ImagePath)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		dc := gg.NewContextForImage(img)
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetLineWidth(opts.LineWidth)
		for _, o := range inst.Objects {
			dc.SetColor(opts.Color(o.Label))
			dc.DrawRectangle(float64(o.XMin), float64(o.YMin), float64(o.XMax-o.XMin), float64(o.YMax-o.YMin))
			dc.Stroke()
			dc.DrawString(o.Label, float64(o.XMin), float64(o.YMin)-5)
		}
		out := filepath.Join(opts.OutDir, fmt.Sprintf("%d.%s", i+1, opts.Ext))
		if err := imageio.Save(dc.Image(), out, opts.Quality); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		written++
		if logger != nil {
			logger.Debug("dataset check rendered", "image", inst.ImagePath, "out", out, "objects", len(inst.Objects))
		}
	}
	return written, errs
}
