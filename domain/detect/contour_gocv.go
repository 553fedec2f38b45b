//go:build gocv

package detect

import (
	"context"
	"image"
	"log/slog"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ContourDetector proposes boxes around the outer contours of an
// Otsu-thresholded image. It suits high-contrast scenes such as objects on
// open water.
type ContourDetector struct {
	blur   int
	invert bool
	logger *slog.Logger
}

// NewContourDetector returns a detector blurring with a blur x blur kernel.
func NewContourDetector(blur int, invert bool, logger *slog.Logger) (Detector, error) {
	if blur < 1 {
		blur = 5
	}
	if blur%2 == 0 {
		blur++
	}
	return &ContourDetector{blur: blur, invert: invert, logger: logger}, nil
}

func (d *ContourDetector) Name() string { return "contour" }

func (d *ContourDetector) Detect(ctx context.Context, img image.Image) ([]Detection, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, errors.Wrap(err, "convert image")
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(d.blur, d.blur), 0, 0, gocv.BorderDefault)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := gocv.ThresholdBinary
	if d.invert {
		mode = gocv.ThresholdBinaryInv
	}
	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(blurred, &binary, 0, 255, mode|gocv.ThresholdOtsu)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(5, 5))
	defer kernel.Close()
	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(binary, &closed, gocv.MorphClose, kernel)

	contours := gocv.FindContours(closed, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	total := float64(img.Bounds().Dx() * img.Bounds().Dy())
	out := make([]Detection, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		r := gocv.BoundingRect(c)
		rectArea := float64(r.Dx() * r.Dy())
		// A contour filling the whole frame is background, not an object.
		if rectArea == 0 || rectArea >= 0.95*total {
			continue
		}
		out = append(out, Detection{Rect: r, Score: gocv.ContourArea(c) / rectArea})
	}
	if d.logger != nil {
		d.logger.Debug("contour detection", "contours", contours.Size(), "kept", len(out))
	}
	return out, nil
}
