// Package imageio loads, saves and enumerates annotation source images.
package imageio

import (
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	// Registers the webp decoder with image.Decode, which imaging.Open uses.
	_ "golang.org/x/image/webp"
)

// DefaultQuality is the JPEG/WebP quality used when none is given.
const DefaultQuality = 92

var imageExts = []string{"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp"}

// Ext returns the lower-case extension of name without the dot.
func Ext(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// IsImageFile reports whether name has a supported image extension.
func IsImageFile(name string) bool { return slices.Contains(imageExts, Ext(name)) }

// ListImages returns the image files directly inside dir, sorted by name.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read dir %s", dir)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && IsImageFile(e.Name()) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(out)
	return out, nil
}

// Load decodes the image at path, applying EXIF orientation.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return img, nil
}

// Save encodes img by the extension of path. Quality applies to lossy formats;
// values <= 0 select DefaultQuality.
func Save(img image.Image, path string, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	switch Ext(path) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "create %s", path)
		}
		defer f.Close()
		if err := webp.Encode(f, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return errors.Wrapf(err, "encode %s", path)
		}
		return nil
	default:
		if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
			return errors.Wrapf(err, "save %s", path)
		}
		return nil
	}
}

// SidecarPath returns the path of a file next to imagePath (or inside dir
// when set) with the same base name and extension ext.
func SidecarPath(imagePath, dir, ext string) string {
	base := filepath.Base(imagePath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + "." + strings.TrimPrefix(ext, ".")
	if dir == "" {
		dir = filepath.Dir(imagePath)
	}
	return filepath.Join(dir, name)
}
