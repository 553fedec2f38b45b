package annotation

import "slices"

// DefaultHistoryDepth bounds the undo stack when no depth is configured.
const DefaultHistoryDepth = 50

// History keeps snapshots of committed store contents for undo/redo.
type History struct {
	undo  [][]Box
	redo  [][]Box
	depth int
}

// NewHistory returns a history keeping at most depth undo steps.
func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &History{depth: depth}
}

// Record pushes the state preceding a change and invalidates redo.
func (h *History) Record(before []Box) {
	if h == nil {
		return
	}
	h.undo = append(h.undo, slices.Clone(before))
	if len(h.undo) > h.depth {
		h.undo = h.undo[1:]
	}
	h.redo = h.redo[:0]
}

// Undo returns the previous state, saving current for redo.
func (h *History) Undo(current []Box) ([]Box, bool) {
	if h == nil || len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, slices.Clone(current))
	return prev, true
}

// Redo reverses the last Undo.
func (h *History) Redo(current []Box) ([]Box, bool) {
	if h == nil || len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, slices.Clone(current))
	return next, true
}

func (h *History) CanUndo() bool { return h != nil && len(h.undo) > 0 }
func (h *History) CanRedo() bool { return h != nil && len(h.redo) > 0 }

// Clear drops all snapshots.
func (h *History) Clear() {
	if h == nil {
		return
	}
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}
