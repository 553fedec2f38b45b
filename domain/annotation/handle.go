package annotation

// Handle names one of the eight resize grips of a box. It is a bit set of
// at most one vertical (Top, Bottom) and one horizontal (Left, Right)
// component; a missing component means Mid on that axis.
type Handle uint8

const (
	HandleNone Handle = 0
	HandleTop  Handle = 1 << iota
	HandleBottom
	HandleLeft
	HandleRight

	HandleTopLeft     = HandleTop | HandleLeft
	HandleTopRight    = HandleTop | HandleRight
	HandleBottomLeft  = HandleBottom | HandleLeft
	HandleBottomRight = HandleBottom | HandleRight
)

const (
	verticalMask   = HandleTop | HandleBottom
	horizontalMask = HandleLeft | HandleRight
)

// Vertical returns the vertical component (Top, Bottom or None for Mid).
func (h Handle) Vertical() Handle { return h & verticalMask }

// Horizontal returns the horizontal component (Left, Right or None for Mid).
func (h Handle) Horizontal() Handle { return h & horizontalMask }

// Corner reports whether h has both components.
func (h Handle) Corner() bool { return h.Vertical() != 0 && h.Horizontal() != 0 }

// FlipVertical swaps Top and Bottom. Mid stays Mid.
func (h Handle) FlipVertical() Handle {
	if h.Vertical() == 0 {
		return h
	}
	return h ^ verticalMask
}

// FlipHorizontal swaps Left and Right. Mid stays Mid.
func (h Handle) FlipHorizontal() Handle {
	if h.Horizontal() == 0 {
		return h
	}
	return h ^ horizontalMask
}

func (h Handle) String() string {
	switch h {
	case HandleNone:
		return "none"
	case HandleTop:
		return "top"
	case HandleBottom:
		return "bottom"
	case HandleLeft:
		return "left"
	case HandleRight:
		return "right"
	case HandleTopLeft:
		return "top-left"
	case HandleTopRight:
		return "top-right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// Cursor is the pointer affordance the host should display.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorMove
	CursorResizeNS
	CursorResizeEW
	CursorResizeNWSE
	CursorResizeNESW
)

func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorCrosshair:
		return "crosshair"
	case CursorMove:
		return "move"
	case CursorResizeNS:
		return "resize-ns"
	case CursorResizeEW:
		return "resize-ew"
	case CursorResizeNWSE:
		return "resize-nwse"
	case CursorResizeNESW:
		return "resize-nesw"
	default:
		return "unknown"
	}
}

// Cursor maps a handle to its resize affordance.
func (h Handle) Cursor() Cursor {
	switch h {
	case HandleTop, HandleBottom:
		return CursorResizeNS
	case HandleLeft, HandleRight:
		return CursorResizeEW
	case HandleTopLeft, HandleBottomRight:
		return CursorResizeNWSE
	case HandleTopRight, HandleBottomLeft:
		return CursorResizeNESW
	default:
		return CursorDefault
	}
}
