package assets

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// PlaceholderPNG is shown on the canvas before an image is loaded.
//
//go:embed placeholder.png
var PlaceholderPNG []byte

// LabelsTXT is the default category list, one label per line.
//
//go:embed labels.txt
var LabelsTXT []byte

// PlaceholderImage decodes the embedded PNG into an image.Image.
func PlaceholderImage() (image.Image, error) {
	if len(PlaceholderPNG) == 0 {
		return nil, fmt.Errorf("embedded placeholder.png is empty")
	}
	img, err := png.Decode(bytes.NewReader(PlaceholderPNG))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// DefaultLabels returns the embedded category list, skipping blank lines
// and '#' comments.
func DefaultLabels() []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(LabelsTXT))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
