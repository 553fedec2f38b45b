package dataset

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/soocke/boxlabel-go/domain/annotation"
)

// Instance is one parsed annotation file joined with its image path.
type Instance struct {
	ImagePath string
	Width     int
	Height    int
	Objects   []annotation.ExportRect
}

// ParseResult aggregates a directory parse.
type ParseResult struct {
	Instances []Instance
	// Seen counts every object name encountered, including filtered ones.
	Seen map[string]int
}

// ParseDir reads every .xml file in annDir in name order. Objects whose name
// is not in labels are skipped (an empty labels list is rejected), and
// instances left without objects are dropped. Unreadable files are reported
// in the returned error while the rest are still parsed.
func ParseDir(annDir, imgDir string, labels []string, logger *slog.Logger) (ParseResult, error) {
	res := ParseResult{Seen: map[string]int{}}
	if len(labels) == 0 {
		return res, errors.New("at least one label is required")
	}
	entries, err := os.ReadDir(annDir)
	if err != nil {
		return res, errors.Wrapf(err, "read annotation dir %s", annDir)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	var errs error
	for _, name := range names {
		doc, err := ReadFile(filepath.Join(annDir, name))
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		inst := Instance{
			ImagePath: filepath.Join(imgDir, doc.Filename),
			Width:     doc.Size.Width,
			Height:    doc.Size.Height,
		}
		for _, r := range doc.Rects() {
			res.Seen[r.Label]++
			if slices.Contains(labels, r.Label) {
				inst.Objects = append(inst.Objects, r)
			}
		}
		if len(inst.Objects) > 0 {
			res.Instances = append(res.Instances, inst)
		}
	}
	if logger != nil {
		logger.Info("parsed annotations", "dir", annDir, "files", len(names), "instances", len(res.Instances), "errors", len(multierr.Errors(errs)))
	}
	return res, errs
}
