package annotation

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// LabelSet is the closed list of categories a box may carry, with a display
// color per category.
type LabelSet struct {
	names  []string
	colors map[string]color.RGBA
	def    string
}

// NewLabelSet builds a set from names. hex optionally overrides colors
// ("#rrggbb"); others get evenly spaced hues. def falls back to the first name.
func NewLabelSet(names []string, hex map[string]string, def string) (*LabelSet, error) {
	names = lo.Uniq(lo.Compact(names))
	if len(names) == 0 {
		return nil, errors.New("label set needs at least one label")
	}
	ls := &LabelSet{names: names, colors: make(map[string]color.RGBA, len(names))}
	for i, n := range names {
		c := colorful.Hsv(360*float64(i)/float64(len(names)), 0.85, 0.95)
		if h, ok := hex[n]; ok {
			parsed, err := colorful.Hex(h)
			if err != nil {
				return nil, errors.Wrapf(err, "label %q color", n)
			}
			c = parsed
		}
		r, g, b := c.Clamped().RGB255()
		ls.colors[n] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	ls.def = names[0]
	if lo.Contains(names, def) {
		ls.def = def
	}
	return ls, nil
}

// Names returns the labels in configured order.
func (l *LabelSet) Names() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.names...)
}

// Contains reports whether name is part of the set.
func (l *LabelSet) Contains(name string) bool {
	return l != nil && lo.Contains(l.names, name)
}

// Default returns the label applied to new and detected boxes.
func (l *LabelSet) Default() string {
	if l == nil {
		return ""
	}
	return l.def
}

// Color returns the opaque display color for name; unknown labels are grey.
func (l *LabelSet) Color(name string) color.RGBA {
	if l != nil {
		if c, ok := l.colors[name]; ok {
			return c
		}
	}
	return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
}
