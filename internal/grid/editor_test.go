package grid

import (
	"errors"
	"slices"
	"strconv"
	"testing"
)

func TestEditDetailRowIsAllOrNothing(t *testing.T) {
	e := newEngine(t, sampleDataset())
	before, _ := e.Row(1)

	bad := [][]string{{"a", "b", "c"}, {"short", "line"}}
	err := e.EditDetailRow(1, bad)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.ID != 1 {
		t.Errorf("ValidationError.ID = %d", verr.ID)
	}
	after, _ := e.Row(1)
	same := slices.EqualFunc(before.Detail, after.Detail, func(a, b []string) bool {
		return slices.Equal(a, b)
	})
	if !same {
		t.Errorf("detail changed to %v", after.Detail)
	}
}

func TestEditDetailRowUnknownRow(t *testing.T) {
	e := newEngine(t, sampleDataset())
	var cfg *ConfigurationError
	if err := e.EditDetailRow(42, nil); !errors.As(err, &cfg) {
		t.Errorf("error = %v, want *ConfigurationError", err)
	}
}

func TestEditDetailRowResizes(t *testing.T) {
	e := newEngine(t, sampleDataset())
	events := recordEvents(e)

	grow := [][]string{{"1", "a", ""}, {"2", "b", ""}, {"3", "c", "x"}}
	if err := e.EditDetailRow(0, grow); err != nil {
		t.Fatal(err)
	}
	if r, _ := e.Row(0); len(r.Detail) != 3 || r.Detail[2][2] != "x" {
		t.Errorf("detail = %v", r.Detail)
	}

	grow[0][0] = "mutated"
	if r, _ := e.Row(0); r.Detail[0][0] != "1" {
		t.Error("engine kept a reference to the caller's grid")
	}

	if err := e.EditDetailRow(0, [][]string{}); err != nil {
		t.Fatal(err)
	}
	if r, _ := e.Row(0); len(r.Detail) != 0 {
		t.Errorf("detail after shrink = %v", r.Detail)
	}

	want := []Event{
		DataChanged{ID: 0, Column: -1},
		DetailResized{ID: 0, Lines: 3},
		DataChanged{ID: 0, Column: -1},
		DetailResized{ID: 0, Lines: 0},
	}
	if !slices.Equal(*events, want) {
		t.Errorf("events = %v, want %v", *events, want)
	}
}

func TestEditDetailRowKeepsExpansion(t *testing.T) {
	e := newEngine(t, sampleDataset())
	_ = e.ToggleDetailRow(2)
	_ = e.EditDetailRow(2, [][]string{{"x", "y", "z"}})
	if r, _ := e.Row(2); !r.DetailShown() {
		t.Error("editing collapsed the detail row")
	}
}

func lineCount(detail [][]string) Cell {
	return TextCell(strconv.Itoa(len(detail)))
}

func TestEditDetailRowUpdatesDerivedColumn(t *testing.T) {
	ds := Dataset{
		Columns:       []ColumnSpec{{Label: "Name"}, {Label: "Sub rows", Derive: lineCount}},
		DetailColumns: testDetailColumns,
		Rows: []RowData{
			{Cells: texts("A", ""), Detail: [][]string{{"1", "", ""}}},
			{Cells: texts("B", ""), Detail: [][]string{{"1", "", ""}, {"2", "", ""}}},
		},
	}
	e := newEngine(t, ds)
	if got := e.Catalog(1).Values; !slices.Equal(got, []string{"1", "2"}) {
		t.Fatalf("derived catalog after load = %v", got)
	}

	_ = e.ToggleFilterValue(1, "2")
	if e.IsRowVisible(1) {
		t.Fatal("row B visible after unchecking 2")
	}

	// A grows to two lines and inherits the unchecked state of "2".
	if err := e.EditDetailRow(0, [][]string{{"1", "", ""}, {"2", "", ""}}); err != nil {
		t.Fatal(err)
	}
	r, _ := e.Row(0)
	if got := r.Cell(1).Value(); got != "2" {
		t.Errorf("derived cell = %q, want 2", got)
	}
	if got := e.Catalog(1).Values; !slices.Equal(got, []string{"2"}) {
		t.Errorf("catalog = %v, want [2]", got)
	}
	if e.IsRowVisible(0) {
		t.Error("row A visible although its derived value is unchecked")
	}
}

func TestEditDetailRowWithoutDetailColumns(t *testing.T) {
	e := New(Options{})
	_ = e.SetColumns([]string{"A"})
	_ = e.SetRowCount(1)

	if err := e.EditDetailRow(0, [][]string{{"a", "b"}, {"c", "d"}}); err != nil {
		t.Fatalf("uniform grid rejected: %v", err)
	}
	var verr *ValidationError
	if err := e.EditDetailRow(0, [][]string{{"a", "b"}, {"c"}}); !errors.As(err, &verr) {
		t.Errorf("ragged grid error = %v", err)
	}
}
