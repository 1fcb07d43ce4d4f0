package table

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// State is the table's UI state, carried in the query string.
type State struct {
	Sort     string
	Desc     bool
	Page     int
	Size     int
	Hidden   map[string]bool
	Selected Selection
}

// ParseState reads sort, desc, page, size, hide and sel parameters. Bad
// numbers fall back to defaults.
func ParseState(q url.Values) State {
	st := State{
		Sort:     q.Get("sort"),
		Desc:     q.Get("desc") == "1",
		Page:     atoiOr(q.Get("page"), 1),
		Size:     atoiOr(q.Get("size"), DefaultPageSize),
		Hidden:   make(map[string]bool),
		Selected: NewSelection(q["sel"]...),
	}
	for _, id := range q["hide"] {
		if id != "" {
			st.Hidden[id] = true
		}
	}
	return st.normalized()
}

// Encode renders the state back into a query string. Defaults are omitted.
func (s State) Encode() string {
	q := url.Values{}
	if s.Sort != "" {
		q.Set("sort", s.Sort)
		if s.Desc {
			q.Set("desc", "1")
		}
	}
	if s.Page > 1 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.Size != 0 && s.Size != DefaultPageSize {
		q.Set("size", strconv.Itoa(s.Size))
	}
	for _, id := range slices.Sorted(maps.Keys(s.Hidden)) {
		if s.Hidden[id] {
			q.Add("hide", id)
		}
	}
	for _, id := range s.Selected.IDs() {
		q.Add("sel", id)
	}
	return q.Encode()
}

func (s State) normalized() State {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Size < 1 {
		s.Size = DefaultPageSize
	}
	if s.Size > MaxPageSize {
		s.Size = MaxPageSize
	}
	if s.Selected == nil {
		s.Selected = NewSelection()
	}
	return s
}

func (s State) withHidden(id string, hidden bool) State {
	h := maps.Clone(s.Hidden)
	if h == nil {
		h = make(map[string]bool)
	}
	if hidden {
		h[id] = true
	} else {
		delete(h, id)
	}
	s.Hidden = h
	return s
}

func atoiOr(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
