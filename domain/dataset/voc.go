// Package dataset reads and writes Pascal VOC annotation files and renders
// annotated datasets for visual inspection.
package dataset

import (
	"encoding/xml"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/soocke/boxlabel-go/domain/annotation"
)

// VOC is a Pascal VOC annotation document.
type VOC struct {
	XMLName  xml.Name `xml:"annotation"`
	Folder   string   `xml:"folder,omitempty"`
	Filename string   `xml:"filename"`
	Path     string   `xml:"path,omitempty"`
	Size     VOCSize  `xml:"size"`
	Objects  []Object `xml:"object"`
}

// VOCSize is the image extent recorded in the document.
type VOCSize struct {
	Width  int `xml:"width"`
	Height int `xml:"height"`
	Depth  int `xml:"depth"`
}

// Object is one labeled box.
type Object struct {
	Name      string `xml:"name"`
	Pose      string `xml:"pose,omitempty"`
	Truncated int    `xml:"truncated,omitempty"`
	Difficult int    `xml:"difficult,omitempty"`
	BndBox    BndBox `xml:"bndbox"`
}

// BndBox holds corners as floats since some tools write fractional pixels.
type BndBox struct {
	XMin float64 `xml:"xmin"`
	YMin float64 `xml:"ymin"`
	XMax float64 `xml:"xmax"`
	YMax float64 `xml:"ymax"`
}

// NewVOC builds a document for filename of size width x height from rects.
func NewVOC(filename string, width, height int, rects []annotation.ExportRect) *VOC {
	doc := &VOC{
		Filename: filepath.Base(filename),
		Size:     VOCSize{Width: width, Height: height, Depth: 3},
		Objects:  make([]Object, 0, len(rects)),
	}
	for _, r := range rects {
		doc.Objects = append(doc.Objects, Object{
			Name: r.Label,
			BndBox: BndBox{
				XMin: float64(r.XMin), YMin: float64(r.YMin),
				XMax: float64(r.XMax), YMax: float64(r.YMax),
			},
		})
	}
	return doc
}

// Rects converts objects back to integer rectangles, rounding each corner.
func (v *VOC) Rects() []annotation.ExportRect {
	if v == nil {
		return nil
	}
	out := make([]annotation.ExportRect, 0, len(v.Objects))
	for _, o := range v.Objects {
		out = append(out, annotation.ExportRect{
			XMin:  round(o.BndBox.XMin),
			YMin:  round(o.BndBox.YMin),
			XMax:  round(o.BndBox.XMax),
			YMax:  round(o.BndBox.YMax),
			Label: o.Name,
		})
	}
	return out
}

// Proposals maps objects into a canvas of the given size, for loading an
// existing annotation back into the editor.
func (v *VOC) Proposals(canvas annotation.Size) []annotation.Proposal {
	if v == nil || v.Size.Width <= 0 || v.Size.Height <= 0 || !canvas.Valid() {
		return nil
	}
	sx := float64(canvas.W) / float64(v.Size.Width)
	sy := float64(canvas.H) / float64(v.Size.Height)
	out := make([]annotation.Proposal, 0, len(v.Objects))
	for _, o := range v.Objects {
		b := o.BndBox
		out = append(out, annotation.Proposal{
			Rect:  image.Rect(round(b.XMin*sx), round(b.YMin*sy), round(b.XMax*sx), round(b.YMax*sy)),
			Label: o.Name,
			Score: 1,
		})
	}
	return out
}

// round rounds half to even.
func round(f float64) int { return int(math.RoundToEven(f)) }

// WriteFile writes v as indented XML to path.
func WriteFile(path string, v *VOC) error {
	if v == nil {
		return errors.New("nil annotation")
	}
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal annotation")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create annotation dir")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// ReadFile parses the VOC document at path.
func ReadFile(path string) (*VOC, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var v VOC
	if err := xml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return &v, nil
}
