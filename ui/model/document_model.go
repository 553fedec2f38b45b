package model

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/soocke/boxlabel-go/domain/imageio"
)

// DocumentModel holds the image being annotated and the folder it was
// opened from. Zero value is an empty document and is usable.
// Not synchronized: mutated only from the UI thread.
type DocumentModel struct {
	path     string
	source   image.Image
	fileSize int64
	dirty    bool
	gen      uint64

	folder []string
	index  int
}

func NewDocumentModel() *DocumentModel { return &DocumentModel{index: -1} }

// Open loads path as the current document. The folder listing is refreshed
// when path lives outside the current folder.
func (m *DocumentModel) Open(path string) error {
	if m == nil {
		return errors.New("nil document model")
	}
	img, err := imageio.Load(path)
	if err != nil {
		return err
	}
	st, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}
	m.path = path
	m.source = img
	m.fileSize = st.Size()
	m.dirty = false
	m.gen++

	m.index = slices.Index(m.folder, path)
	if m.index < 0 {
		if files, err := imageio.ListImages(filepath.Dir(path)); err == nil {
			m.folder = files
			m.index = slices.Index(files, path)
		}
	}
	return nil
}

// OpenFolder lists dir and opens its first image.
func (m *DocumentModel) OpenFolder(dir string) error {
	if m == nil {
		return errors.New("nil document model")
	}
	files, err := imageio.ListImages(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Errorf("no images in %s", dir)
	}
	m.folder = files
	m.index = -1
	return m.Open(files[0])
}

// Step returns the path delta images away in the folder, or "" at either end.
func (m *DocumentModel) Step(delta int) string {
	if m == nil || m.index < 0 {
		return ""
	}
	i := m.index + delta
	if i < 0 || i >= len(m.folder) {
		return ""
	}
	return m.folder[i]
}

func (m *DocumentModel) Path() string {
	if m == nil {
		return ""
	}
	return m.path
}

func (m *DocumentModel) Source() image.Image {
	if m == nil {
		return nil
	}
	return m.source
}

// SourceSize returns the pixel size of the loaded image, or 0,0.
func (m *DocumentModel) SourceSize() (int, int) {
	if m == nil || m.source == nil {
		return 0, 0
	}
	b := m.source.Bounds()
	return b.Dx(), b.Dy()
}

// Generation increments on every Open/SetImage, so async work started for an
// older document can be recognised.
func (m *DocumentModel) Generation() uint64 {
	if m == nil {
		return 0
	}
	return m.gen
}

func (m *DocumentModel) Dirty() bool { return m != nil && m.dirty }

func (m *DocumentModel) SetDirty(b bool) {
	if m == nil {
		return
	}
	m.dirty = b
}

// Describe returns a one-line summary for the status bar.
func (m *DocumentModel) Describe() string {
	if m == nil || m.source == nil {
		return "No image"
	}
	w, h := m.SourceSize()
	s := fmt.Sprintf("%s  %dx%d", filepath.Base(m.path), w, h)
	if m.fileSize > 0 {
		s += "  " + humanize.Bytes(uint64(m.fileSize))
	}
	if m.index >= 0 {
		s += fmt.Sprintf("  (%d/%d)", m.index+1, len(m.folder))
	}
	if m.dirty {
		s += "  *"
	}
	return s
}
