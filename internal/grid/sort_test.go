package grid

import (
	"slices"
	"testing"
)

func valueDataset(values ...string) Dataset {
	ds := Dataset{
		Columns:       []ColumnSpec{{Label: "Name"}, {Label: "Value"}},
		DetailColumns: testDetailColumns,
	}
	for i, v := range values {
		name := string(rune('A' + i))
		ds.Rows = append(ds.Rows, row("detail-"+name, TextCell(name), TextCell(v)))
	}
	return ds
}

func names(views []RowView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Cell(0).Value()
	}
	return out
}

func TestSortKeepsDetailsPaired(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{"ascending input", []string{"1", "2", "3", "4"}, []string{"D", "C", "B", "A"}},
		{"mixed input", []string{"1", "3", "2", "4"}, []string{"D", "B", "C", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, valueDataset(tt.values...))
			_ = e.ToggleDetailRow(0)
			_ = e.ToggleDetailRow(2)

			if err := e.SortByColumn(1, Descending); err != nil {
				t.Fatal(err)
			}
			rows := e.Rows()
			if got := names(rows); !slices.Equal(got, tt.want) {
				t.Fatalf("order = %v, want %v", got, tt.want)
			}
			for i, r := range rows {
				if want := "detail-" + tt.want[i]; r.Detail[0][0] != want {
					t.Errorf("row %s carries detail %q", tt.want[i], r.Detail[0][0])
				}
				if r.Expanded {
					t.Errorf("row %s still expanded after sort", tt.want[i])
				}
			}
		})
	}
}

func TestSortIsStable(t *testing.T) {
	e := newEngine(t, valueDataset("b", "a", "b", "a", "b"))
	if err := e.SortByColumn(1, Ascending); err != nil {
		t.Fatal(err)
	}
	if got := names(e.Rows()); !slices.Equal(got, []string{"B", "D", "A", "C", "E"}) {
		t.Errorf("ascending = %v", got)
	}
	if err := e.SortByColumn(1, Descending); err != nil {
		t.Fatal(err)
	}
	if got := names(e.Rows()); !slices.Equal(got, []string{"A", "C", "E", "B", "D"}) {
		t.Errorf("descending = %v", got)
	}
}

func TestSortDescendingReversesDistinctValues(t *testing.T) {
	e := newEngine(t, valueDataset("q", "c", "x", "m", "a"))
	_ = e.SortByColumn(1, Ascending)
	asc := names(e.Rows())
	_ = e.SortByColumn(1, Descending)
	desc := names(e.Rows())
	slices.Reverse(desc)
	if !slices.Equal(asc, desc) {
		t.Errorf("descending is not the reverse of ascending: %v vs %v", asc, desc)
	}
}

func TestSortComparesBytes(t *testing.T) {
	e := newEngine(t, valueDataset("9", "10", "b", "B"))
	_ = e.SortByColumn(1, Ascending)
	if got := names(e.Rows()); !slices.Equal(got, []string{"B", "A", "D", "C"}) {
		t.Errorf("order = %v", got)
	}
}

func TestSortPlacesHiddenRowsLast(t *testing.T) {
	e := newEngine(t, valueDataset("3", "1", "2", "1", "0"))
	_ = e.ToggleFilterValue(1, "1")

	if err := e.SortByColumn(1, Ascending); err != nil {
		t.Fatal(err)
	}
	rows := e.Rows()
	if got := names(rows); !slices.Equal(got, []string{"E", "C", "A", "B", "D"}) {
		t.Fatalf("order = %v", got)
	}
	for _, r := range rows[3:] {
		if r.Visible {
			t.Errorf("row %s should be hidden", r.Cell(0).Value())
		}
	}
	if got := detailTags(rows); !slices.Equal(got, []string{"detail-E", "detail-C", "detail-A", "detail-B", "detail-D"}) {
		t.Errorf("details = %v", got)
	}
}

func TestSortEmitsOneBulkChange(t *testing.T) {
	e := newEngine(t, valueDataset("2", "1"))
	_ = e.ToggleDetailRow(1)
	events := recordEvents(e)

	_ = e.SortByColumn(1, Ascending)

	var bulks int
	var order []RowID
	for _, ev := range *events {
		switch ev := ev.(type) {
		case BulkChanged:
			bulks++
		case RowOrderChanged:
			order = ev.Order
		case DetailVisibilityChanged:
			t.Errorf("detail event %v leaked out of the batch", ev)
		}
	}
	if bulks != 1 {
		t.Errorf("got %d BulkChanged events, want 1", bulks)
	}
	if !slices.Equal(order, []RowID{1, 0}) {
		t.Errorf("RowOrderChanged = %v", order)
	}
}

func TestToggleSort(t *testing.T) {
	e := newEngine(t, valueDataset("1", "2"))
	_ = e.ToggleSort(1)
	if st := e.SortState(); !st.Active || st.Direction != Ascending {
		t.Fatalf("first toggle state = %+v", st)
	}
	_ = e.ToggleSort(1)
	if st := e.SortState(); st.Direction != Descending {
		t.Errorf("second toggle direction = %s", st.Direction)
	}
	_ = e.ToggleSort(0)
	if st := e.SortState(); st.Column != 0 || st.Direction != Ascending {
		t.Errorf("new column state = %+v", st)
	}
}

func TestSortByVisualOutOfRange(t *testing.T) {
	e := newEngine(t, valueDataset("1"))
	if err := e.SortByVisual(5, Ascending); err == nil {
		t.Error("expected an error")
	}
	if e.SortState().Active {
		t.Error("failed sort recorded state")
	}
}
