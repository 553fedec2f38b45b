// Package detect proposes candidate boxes for an image. Detectors work in
// source-image pixel space; ToCanvas maps their output into the editor's
// canvas space.
package detect

import (
	"context"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/soocke/boxlabel-go/domain/annotation"
)

// Detection is a candidate rectangle in source-image pixels.
type Detection struct {
	Rect  image.Rectangle
	Label string
	Score float64
}

// Detector proposes detections for an image. Implementations may block and
// must honor ctx cancellation.
type Detector interface {
	Name() string
	Detect(ctx context.Context, img image.Image) ([]Detection, error)
}

// Postprocessor filters or rewrites a detection list.
type Postprocessor func([]Detection) []Detection

// NewAreaFilter drops detections smaller than area px².
func NewAreaFilter(area int) Postprocessor {
	return func(in []Detection) []Detection {
		return lo.Filter(in, func(d Detection, _ int) bool {
			return d.Rect.Dx()*d.Rect.Dy() >= area
		})
	}
}

// NewScoreFilter drops detections below conf.
func NewScoreFilter(conf float64) Postprocessor {
	return func(in []Detection) []Detection {
		return lo.Filter(in, func(d Detection, _ int) bool { return d.Score >= conf })
	}
}

// NewLabelMapper canonicalizes labels case-insensitively against allowed.
// Unknown labels become fallback, or are dropped when fallback is empty.
func NewLabelMapper(allowed []string, fallback string) Postprocessor {
	index := lo.SliceToMap(allowed, func(l string) (string, string) { return strings.ToLower(l), l })
	return func(in []Detection) []Detection {
		return lo.FilterMap(in, func(d Detection, _ int) (Detection, bool) {
			if l, ok := index[strings.ToLower(strings.TrimSpace(d.Label))]; ok {
				d.Label = l
				return d, true
			}
			if fallback == "" {
				return d, false
			}
			d.Label = fallback
			return d, true
		})
	}
}

// NewLimit keeps the n highest scoring detections.
func NewLimit(n int) Postprocessor {
	return func(in []Detection) []Detection {
		if n <= 0 || len(in) <= n {
			return in
		}
		out := append([]Detection(nil), in...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
		return out[:n]
	}
}

// Apply runs the postprocessors in order.
func Apply(in []Detection, pps ...Postprocessor) []Detection {
	for _, pp := range pps {
		if pp != nil {
			in = pp(in)
		}
	}
	return in
}

// ToCanvas scales detections from an image of size src into canvas space.
func ToCanvas(dets []Detection, src, canvas annotation.Size) []annotation.Proposal {
	if !src.Valid() || !canvas.Valid() {
		return nil
	}
	sx := float64(canvas.W) / float64(src.W)
	sy := float64(canvas.H) / float64(src.H)
	return lo.Map(dets, func(d Detection, _ int) annotation.Proposal {
		r := d.Rect.Canon()
		return annotation.Proposal{
			Rect: image.Rect(
				int(math.Round(float64(r.Min.X)*sx)),
				int(math.Round(float64(r.Min.Y)*sy)),
				int(math.Round(float64(r.Max.X)*sx)),
				int(math.Round(float64(r.Max.Y)*sy)),
			),
			Label: d.Label,
			Score: d.Score,
		}
	})
}

// FromNormalized converts a [0,1] corner box into pixel space for an image of
// size src. Values outside [0,1] are clamped.
func FromNormalized(x0, y0, x1, y1 float64, src annotation.Size) image.Rectangle {
	c := func(v float64) float64 { return math.Max(0, math.Min(1, v)) }
	return image.Rect(
		int(math.Round(c(x0)*float64(src.W))),
		int(math.Round(c(y0)*float64(src.H))),
		int(math.Round(c(x1)*float64(src.W))),
		int(math.Round(c(y1)*float64(src.H))),
	)
}
