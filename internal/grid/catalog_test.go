package grid

import (
	"slices"
	"testing"
)

func rowsOf(cells ...Cell) []*Row {
	rows := make([]*Row, len(cells))
	for i, c := range cells {
		rows[i] = &Row{ID: RowID(i), Cells: []Cell{c}}
	}
	return rows
}

func TestBuildCatalogTextColumn(t *testing.T) {
	cat := BuildCatalog(rowsOf(TextCell("x"), TextCell(""), TextCell("y"), TextCell("x")), 0)

	if !slices.Equal(cat.Values, []string{"x", "y"}) {
		t.Errorf("values = %v, want [x y]", cat.Values)
	}
	want := []string{OptionAll, OptionClear, OptionShowBlanks, OptionHideBlanks, "x", "y"}
	if got := cat.Options(); !slices.Equal(got, want) {
		t.Errorf("options = %v, want %v", got, want)
	}
}

func TestBuildCatalogBlankOnlyColumn(t *testing.T) {
	cat := BuildCatalog(rowsOf(TextCell(""), TextCell("  "), TextCell("")), 0)

	if len(cat.Values) != 0 {
		t.Errorf("values = %v, want none", cat.Values)
	}
	want := []string{OptionAll, OptionClear, OptionShowBlanks, OptionHideBlanks}
	if got := cat.Options(); !slices.Equal(got, want) {
		t.Errorf("options = %v, want %v", got, want)
	}
}

func TestBuildCatalogCheckboxColumn(t *testing.T) {
	cat := BuildCatalog(rowsOf(BoolCell(true), BoolCell(false), BoolCell(true)), 0)

	if !cat.HasBool {
		t.Fatal("HasBool = false")
	}
	want := []string{OptionAll, OptionClear, FalseValue, TrueValue}
	if got := cat.Options(); !slices.Equal(got, want) {
		t.Errorf("options = %v, want %v", got, want)
	}
}

func TestBuildCatalogSortsLexicographically(t *testing.T) {
	cat := BuildCatalog(rowsOf(TextCell("b"), TextCell("B"), TextCell("10"), TextCell("9"), TextCell("a")), 0)
	want := []string{"10", "9", "B", "a", "b"}
	if !slices.Equal(cat.Values, want) {
		t.Errorf("values = %v, want %v", cat.Values, want)
	}
	if !cat.Contains("9") || cat.Contains("c") {
		t.Error("Contains disagrees with Values")
	}
}

func TestBuildCatalogShortRow(t *testing.T) {
	rows := []*Row{{ID: 0, Cells: nil}, {ID: 1, Cells: []Cell{TextCell("v")}}}
	cat := BuildCatalog(rows, 0)
	if !slices.Equal(cat.Values, []string{"v"}) {
		t.Errorf("values = %v", cat.Values)
	}
}
