package view

import (
	"image"
	"regexp"
	"strconv"
	"strings"

	"github.com/soocke/boxlabel-go/domain/annotation"
	"github.com/soocke/boxlabel-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CanvasHandlers receives pointer input in canvas pixel coordinates.
type CanvasHandlers struct {
	PointerDown func(x, y int)
	PointerMove func(x, y int)
	PointerUp   func(x, y int)
	Relabel     func(x, y int) // secondary click
	Delete      func(x, y int) // shift + secondary click
}

// CanvasView shows the rendered annotation canvas and reports pointer input.
type CanvasView interface {
	ShowImage(img image.Image)
	SetCursor(annotation.Cursor)
}

type canvasView struct {
	label     *LabelWidget
	prevPhoto *Img // disposed before each replacement
	cursor    string
}

// NewCanvasView creates the canvas label at row, spanning cols columns, and
// binds pointer events. The label is anchored top-left without padding so
// event coordinates equal canvas coordinates.
func NewCanvasView(row, cols int, w, h int, placeholder image.Image, hs CanvasHandlers) CanvasView {
	if placeholder == nil {
		placeholder = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	data := images.EncodePNG(images.Stretch(placeholder, w, h))
	if len(data) == 0 {
		data = images.EncodePNG(image.NewRGBA(image.Rect(0, 0, w, h)))
	}
	photo := NewPhoto(Data(data))
	lbl := Label(Image(photo), Anchor("nw"), Borderwidth(0), Padx(0), Pady(0), Cursor("arrow"))
	Grid(lbl, Row(row), Column(0), Columnspan(cols), Sticky("nsew"))
	v := &canvasView{label: lbl, prevPhoto: photo, cursor: "arrow"}

	point := func(fn func(x, y int)) any {
		return Command(func(e *Event) {
			if fn != nil && e != nil {
				fn(e.X, e.Y)
			}
		})
	}
	Bind(lbl, "<ButtonPress-1>", point(hs.PointerDown))
	Bind(lbl, "<Motion>", point(hs.PointerMove))
	Bind(lbl, "<ButtonRelease-1>", point(hs.PointerUp))
	Bind(lbl, "<ButtonPress-3>", point(hs.Relabel))
	Bind(lbl, "<Shift-ButtonPress-3>", point(hs.Delete))
	return v
}

func (v *canvasView) ShowImage(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	data := images.EncodePNG(img)
	if len(data) == 0 {
		return
	}
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(data))
	v.label.Configure(Image(v.prevPhoto))
}

func (v *canvasView) SetCursor(c annotation.Cursor) {
	if v == nil || v.label == nil {
		return
	}
	name := cursorName(c)
	if name == v.cursor {
		return
	}
	v.cursor = name
	v.label.Configure(Cursor(name))
}

// cursorName maps editor cursors to portable Tk cursor names.
func cursorName(c annotation.Cursor) string {
	switch c {
	case annotation.CursorCrosshair:
		return "crosshair"
	case annotation.CursorMove:
		return "fleur"
	case annotation.CursorResizeNS:
		return "sb_v_double_arrow"
	case annotation.CursorResizeEW:
		return "sb_h_double_arrow"
	case annotation.CursorResizeNWSE:
		return "top_left_corner"
	case annotation.CursorResizeNESW:
		return "top_right_corner"
	default:
		return "arrow"
	}
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometry parses a Tk geometry string and returns the corresponding rectangle.
func parseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
