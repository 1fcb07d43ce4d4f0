package table

import (
	"maps"
	"slices"
)

// CheckState is the tri-state of the header checkbox.
type CheckState int

const (
	None CheckState = iota
	Some
	All
)

func (c CheckState) String() string {
	switch c {
	case Some:
		return "some"
	case All:
		return "all"
	default:
		return "none"
	}
}

// Selection is a set of selected row IDs.
type Selection map[string]struct{}

func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Selection) Toggle(id string) {
	if s.Has(id) {
		delete(s, id)
		return
	}
	s[id] = struct{}{}
}

// SelectAll marks every id in visible as selected.
func (s Selection) SelectAll(visible []string) {
	for _, id := range visible {
		s[id] = struct{}{}
	}
}

func (s Selection) Clear() {
	clear(s)
}

func (s Selection) Clone() Selection {
	if s == nil {
		return NewSelection()
	}
	return maps.Clone(s)
}

// IDs returns the selected ids in sorted order.
func (s Selection) IDs() []string {
	return slices.Sorted(maps.Keys(s))
}

// Count returns how many of visible are selected.
func (s Selection) Count(visible []string) int {
	n := 0
	for _, id := range visible {
		if s.Has(id) {
			n++
		}
	}
	return n
}

// HeaderState reports None, Some or All against the visible rows. Any partial
// selection is Some, never None.
func (s Selection) HeaderState(visible []string) CheckState {
	n := s.Count(visible)
	switch {
	case n == 0:
		return None
	case n == len(visible):
		return All
	default:
		return Some
	}
}
