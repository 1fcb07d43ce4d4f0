// Package table turns a slice of rows and a set of column declarations into a
// concrete view for templates. It knows nothing about the row type beyond
// what the columns expose. Sorting, paging, column visibility and selection
// are all driven by query parameters and held in State.
package table

import (
	"cmp"
	"slices"
	"strings"
)

// Cell is one rendered table cell. An empty Class means plain text.
type Cell struct {
	Text  string
	Class string
}

// Column declares how one field of T is labeled and shown. Value is the raw
// text used for sorting, and for display when Cell is nil.
type Column[T any] struct {
	ID       string
	Header   string
	Value    func(T) string
	Cell     func(T) Cell
	Sortable bool
	Hideable bool
}

func (c Column[T]) render(row T) Cell {
	if c.Cell != nil {
		return c.Cell(row)
	}
	if c.Value != nil {
		return Cell{Text: c.Value(row)}
	}
	return Cell{}
}

// ActionKind says how the page carries out a row action.
type ActionKind string

const (
	ActionCopy ActionKind = "copy"
	ActionPost ActionKind = "post"
)

// Action is a row action descriptor. Copy actions put Value on the clipboard.
// Post actions submit Fields to URL, after a blocking prompt when Confirm is
// set.
type Action struct {
	Label   string
	Kind    ActionKind
	Value   string
	URL     string
	Fields  map[string]string
	Confirm string
	Danger  bool
}

// Definition is everything Build needs besides the rows.
type Definition[T any] struct {
	Columns []Column[T]
	RowID   func(T) string
	Actions func(T) []Action
}

type Header struct {
	ID        string
	Label     string
	Sortable  bool
	Sorted    bool
	Desc      bool
	SortQuery string
}

type Toggle struct {
	ID      string
	Label   string
	Visible bool
	Query   string
}

type Row struct {
	ID          string
	Cells       []Cell
	Actions     []Action
	Selected    bool
	ToggleQuery string
}

type Pagination struct {
	Page      int
	Pages     int
	Size      int
	Total     int
	HasPrev   bool
	HasNext   bool
	PrevQuery string
	NextQuery string
}

// View is the template-ready table.
type View struct {
	Headers       []Header
	Toggles       []Toggle
	Rows          []Row
	HeaderCheck   CheckState
	HeaderQuery   string
	SelectedCount int
	Pagination    Pagination
	HasActions    bool
	Empty         bool
}

// Span is the rendered column count: the select column, the visible headers
// and, when rows carry actions, the actions column.
func (v View) Span() int {
	n := len(v.Headers) + 1
	if v.HasActions {
		n++
	}
	return n
}

// Build sorts, pages and renders rows under st.
func Build[T any](rows []T, def Definition[T], st State) View {
	st = st.normalized()

	visible := make([]Column[T], 0, len(def.Columns))
	for _, c := range def.Columns {
		if c.Hideable && st.Hidden[c.ID] {
			continue
		}
		visible = append(visible, c)
	}

	sorted := slices.Clone(rows)
	if col, ok := findColumn(def.Columns, st.Sort); ok && col.Sortable && col.Value != nil {
		slices.SortStableFunc(sorted, func(a, b T) int {
			n := cmp.Compare(strings.ToLower(col.Value(a)), strings.ToLower(col.Value(b)))
			if st.Desc {
				return -n
			}
			return n
		})
	}

	total := len(sorted)
	pages := max(1, (total+st.Size-1)/st.Size)
	page := min(st.Page, pages)
	start := min((page-1)*st.Size, total)
	end := min(start+st.Size, total)
	paged := sorted[start:end]

	view := View{
		HasActions: def.Actions != nil,
		Empty:      total == 0,
	}

	for _, c := range visible {
		h := Header{ID: c.ID, Label: c.Header, Sortable: c.Sortable && c.Value != nil}
		if h.Sortable {
			next := st
			if st.Sort == c.ID {
				h.Sorted = true
				h.Desc = st.Desc
				next.Desc = !st.Desc
			} else {
				next.Sort = c.ID
				next.Desc = false
			}
			next.Page = 1
			h.SortQuery = next.Encode()
		}
		view.Headers = append(view.Headers, h)
	}

	for _, c := range def.Columns {
		if !c.Hideable {
			continue
		}
		next := st.withHidden(c.ID, !st.Hidden[c.ID])
		view.Toggles = append(view.Toggles, Toggle{
			ID:      c.ID,
			Label:   c.Header,
			Visible: !st.Hidden[c.ID],
			Query:   next.Encode(),
		})
	}

	pageIDs := make([]string, 0, len(paged))
	for _, item := range paged {
		id := def.RowID(item)
		pageIDs = append(pageIDs, id)

		r := Row{ID: id, Selected: st.Selected.Has(id)}
		for _, c := range visible {
			r.Cells = append(r.Cells, c.render(item))
		}
		if def.Actions != nil {
			r.Actions = def.Actions(item)
		}
		next := st
		next.Selected = st.Selected.Clone()
		next.Selected.Toggle(id)
		r.ToggleQuery = next.Encode()
		view.Rows = append(view.Rows, r)
	}

	view.HeaderCheck = st.Selected.HeaderState(pageIDs)
	allNext := st
	allNext.Selected = st.Selected.Clone()
	if view.HeaderCheck == All {
		allNext.Selected.Clear()
	} else {
		allNext.Selected.SelectAll(pageIDs)
	}
	view.HeaderQuery = allNext.Encode()
	view.SelectedCount = st.Selected.Count(pageIDs)

	pg := Pagination{
		Page:    page,
		Pages:   pages,
		Size:    st.Size,
		Total:   total,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
	if pg.HasPrev {
		prev := st
		prev.Page = page - 1
		pg.PrevQuery = prev.Encode()
	}
	if pg.HasNext {
		next := st
		next.Page = page + 1
		pg.NextQuery = next.Encode()
	}
	view.Pagination = pg

	return view
}

func findColumn[T any](cols []Column[T], id string) (Column[T], bool) {
	for _, c := range cols {
		if c.ID == id {
			return c, true
		}
	}
	return Column[T]{}, false
}
