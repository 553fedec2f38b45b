package annotation

import (
	"image"
	"slices"
)

// CountListener receives the box count after it changes.
type CountListener func(count int)

// Store is the ordered box collection. Index 0 is topmost and is hit-tested
// first; new boxes are inserted there.
type Store struct {
	boxes     []Box
	listeners []CountListener
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// AddListener registers a box-count observer.
func (s *Store) AddListener(l CountListener) {
	if s == nil || l == nil {
		return
	}
	s.listeners = append(s.listeners, l)
}

func (s *Store) notifyCount() {
	n := len(s.boxes)
	for _, l := range s.listeners {
		l(n)
	}
}

// InsertFront places b on top of the z-order. No notification is sent;
// the box counts once its gesture commits.
func (s *Store) InsertFront(b Box) {
	if s == nil {
		return
	}
	s.boxes = slices.Insert(s.boxes, 0, b)
}

// RemoveAt deletes the box at idx, keeping the relative order of the rest.
func (s *Store) RemoveAt(idx int) bool {
	if s == nil || idx < 0 || idx >= len(s.boxes) {
		return false
	}
	s.boxes = slices.Delete(s.boxes, idx, idx+1)
	s.notifyCount()
	return true
}

// Get returns the box at idx.
func (s *Store) Get(idx int) (Box, bool) {
	if s == nil || idx < 0 || idx >= len(s.boxes) {
		return Box{}, false
	}
	return s.boxes[idx], true
}

// Set replaces the box at idx in place.
func (s *Store) Set(idx int, b Box) bool {
	if s == nil || idx < 0 || idx >= len(s.boxes) {
		return false
	}
	s.boxes[idx] = b
	return true
}

// All returns a copy of the boxes in z-order.
func (s *Store) All() []Box {
	if s == nil {
		return nil
	}
	return slices.Clone(s.boxes)
}

// Count returns the number of boxes, including an in-progress one.
func (s *Store) Count() int {
	if s == nil {
		return 0
	}
	return len(s.boxes)
}

// IndexOf returns the current index of id, or -1.
func (s *Store) IndexOf(id BoxID) int {
	if s == nil {
		return -1
	}
	return slices.IndexFunc(s.boxes, func(b Box) bool { return b.ID == id })
}

// FindTopmostHandle returns the first box in z-order with a handle under p.
func (s *Store) FindTopmostHandle(t HitTester, p image.Point) (int, Handle) {
	if s == nil {
		return -1, HandleNone
	}
	for i, b := range s.boxes {
		if h := t.HandleAt(b, p); h != HandleNone {
			return i, h
		}
	}
	return -1, HandleNone
}

// FindTopmostInterior returns the first box in z-order containing p, or -1.
func (s *Store) FindTopmostInterior(t HitTester, p image.Point) int {
	if s == nil {
		return -1
	}
	for i, b := range s.boxes {
		if t.Contains(b, p) {
			return i
		}
	}
	return -1
}

// ReplaceAll swaps the whole collection atomically and notifies observers.
func (s *Store) ReplaceAll(boxes []Box) {
	if s == nil {
		return
	}
	s.boxes = slices.Clone(boxes)
	s.notifyCount()
}
