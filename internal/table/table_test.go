package table

import (
	"net/url"
	"strconv"
	"testing"
)

type item struct {
	id   string
	name string
}

func definition() Definition[item] {
	return Definition[item]{
		Columns: []Column[item]{
			{ID: "name", Header: "Name", Value: func(i item) string { return i.name }, Sortable: true},
			{ID: "id", Header: "ID", Value: func(i item) string { return i.id }, Hideable: true},
		},
		RowID: func(i item) string { return i.id },
		Actions: func(i item) []Action {
			return []Action{{Label: "Copy ID", Kind: ActionCopy, Value: i.id}}
		},
	}
}

func items(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{id: "r" + strconv.Itoa(i), name: string(rune('a' + i%26))}
	}
	return out
}

func TestSelection_HeaderState(t *testing.T) {
	visible := []string{"a", "b", "c"}
	sel := NewSelection()

	if got := sel.HeaderState(visible); got != None {
		t.Fatalf("empty selection = %v, want none", got)
	}

	sel.SelectAll(visible)
	if got := sel.HeaderState(visible); got != All {
		t.Fatalf("after select all = %v, want all", got)
	}

	sel.Toggle("b")
	if got := sel.HeaderState(visible); got != Some {
		t.Errorf("after deselecting one = %v, want some", got)
	}

	sel.Toggle("a")
	sel.Toggle("c")
	if got := sel.HeaderState(visible); got != None {
		t.Errorf("after deselecting all = %v, want none", got)
	}
}

func TestParseState(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  State
	}{
		{"defaults", "", State{Page: 1, Size: DefaultPageSize}},
		{"bad numbers", "page=x&size=-3", State{Page: 1, Size: DefaultPageSize}},
		{"sort desc", "sort=name&desc=1&page=2", State{Sort: "name", Desc: true, Page: 2, Size: DefaultPageSize}},
		{"size capped", "size=1000", State{Page: 1, Size: MaxPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			got := ParseState(q)
			if got.Sort != tt.want.Sort || got.Desc != tt.want.Desc || got.Page != tt.want.Page || got.Size != tt.want.Size {
				t.Errorf("ParseState(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestState_EncodeRoundTrip(t *testing.T) {
	q, _ := url.ParseQuery("sort=name&desc=1&page=3&size=20&hide=id&sel=r2&sel=r1")
	st := ParseState(q)

	again, _ := url.ParseQuery(st.Encode())
	back := ParseState(again)
	if back.Sort != "name" || !back.Desc || back.Page != 3 || back.Size != 20 {
		t.Errorf("round trip lost fields: %+v", back)
	}
	if !back.Hidden["id"] || !back.Selected.Has("r1") || !back.Selected.Has("r2") {
		t.Errorf("round trip lost hide/sel: %+v", back)
	}
}

func TestBuild_SortsAndPages(t *testing.T) {
	rows := []item{{"1", "carol"}, {"2", "Alice"}, {"3", "bob"}}

	v := Build(rows, definition(), State{Sort: "name", Page: 1, Size: 2})
	if len(v.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(v.Rows))
	}
	if v.Rows[0].Cells[0].Text != "Alice" || v.Rows[1].Cells[0].Text != "bob" {
		t.Errorf("sort order = %q, %q", v.Rows[0].Cells[0].Text, v.Rows[1].Cells[0].Text)
	}
	if !v.Pagination.HasNext || v.Pagination.HasPrev || v.Pagination.Pages != 2 {
		t.Errorf("pagination = %+v", v.Pagination)
	}

	v = Build(rows, definition(), State{Sort: "name", Desc: true, Page: 2, Size: 2})
	if len(v.Rows) != 1 || v.Rows[0].Cells[0].Text != "Alice" {
		t.Errorf("desc page 2 = %+v", v.Rows)
	}
}

func TestBuild_PageClampedToLast(t *testing.T) {
	v := Build(items(3), definition(), State{Page: 9, Size: 2})
	if v.Pagination.Page != 2 || len(v.Rows) != 1 {
		t.Errorf("page = %d rows = %d, want page 2 with 1 row", v.Pagination.Page, len(v.Rows))
	}
}

func TestBuild_HiddenColumn(t *testing.T) {
	v := Build(items(2), definition(), State{Hidden: map[string]bool{"id": true}})
	if len(v.Headers) != 1 || v.Headers[0].ID != "name" {
		t.Fatalf("headers = %+v, want only name", v.Headers)
	}
	if len(v.Rows[0].Cells) != 1 {
		t.Errorf("cells = %d, want 1", len(v.Rows[0].Cells))
	}
	if len(v.Toggles) != 1 || v.Toggles[0].Visible {
		t.Errorf("toggles = %+v", v.Toggles)
	}
}

func TestBuild_HeaderCheckbox(t *testing.T) {
	rows := items(3)

	v := Build(rows, definition(), State{Selected: NewSelection("r0", "r1", "r2")})
	if v.HeaderCheck != All {
		t.Fatalf("header = %v, want all", v.HeaderCheck)
	}

	// Following the toggle link for one row leaves the header indeterminate.
	q, _ := url.ParseQuery(v.Rows[1].ToggleQuery)
	v = Build(rows, definition(), ParseState(q))
	if v.HeaderCheck != Some {
		t.Errorf("header after one deselect = %v, want some", v.HeaderCheck)
	}
	if v.Rows[1].Selected || !v.Rows[0].Selected {
		t.Errorf("row selection = %v %v", v.Rows[0].Selected, v.Rows[1].Selected)
	}

	// The header link from Some selects every visible row.
	q, _ = url.ParseQuery(v.HeaderQuery)
	v = Build(rows, definition(), ParseState(q))
	if v.HeaderCheck != All || v.SelectedCount != 3 {
		t.Errorf("header after select all = %v (%d selected)", v.HeaderCheck, v.SelectedCount)
	}
}

func TestBuild_EmptyAndActions(t *testing.T) {
	v := Build[item](nil, definition(), State{})
	if !v.Empty || len(v.Rows) != 0 || v.Pagination.Pages != 1 {
		t.Errorf("empty view = %+v", v)
	}
	if got := v.Span(); got != 4 {
		t.Errorf("Span = %d, want 4 (select, two headers, actions)", got)
	}
	hidden := Build[item](nil, Definition[item]{Columns: definition().Columns}, State{Hidden: map[string]bool{"id": true}})
	if got := hidden.Span(); got != 2 {
		t.Errorf("Span without actions and a hidden column = %d, want 2", got)
	}

	v = Build(items(1), definition(), State{})
	if !v.HasActions || len(v.Rows[0].Actions) != 1 || v.Rows[0].Actions[0].Value != "r0" {
		t.Errorf("actions = %+v", v.Rows[0].Actions)
	}
}
