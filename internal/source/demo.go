package source

import (
	"fmt"
	"math/rand"

	"subgrid/internal/grid"
)

// DemoDetailColumns labels the detail grid of the demo table.
var DemoDetailColumns = []string{"NCR No.", "Disposition", "Extra"}

var (
	demoParts        = []string{"Bracket", "Housing", "Shaft", "Gasket", "Cover", "Flange"}
	demoStatus       = []string{"Open", "Review", "Closed", ""}
	demoSuppliers    = []string{"Acme", "Globex", "Initech", "Umbrella"}
	demoDispositions = []string{"Rework", "Scrap", "Use as is", "Return to vendor"}
)

// Demo generates a table of n master rows, each with a 3x3 detail grid. The
// last master column is a checkbox column. The same seed always yields the
// same table.
func Demo(n int, seed int64) grid.Dataset {
	r := rand.New(rand.NewSource(seed))
	pick := func(pool []string) string { return pool[r.Intn(len(pool))] }

	ds := grid.Dataset{
		Columns: []grid.ColumnSpec{
			{Label: "Field 1"},
			{Label: "Field 2"},
			{Label: "Field 3"},
			{Label: "Field N"},
			{Label: "Done", Checkbox: true},
		},
		DetailColumns: DemoDetailColumns,
		Rows:          make([]grid.RowData, n),
	}
	for i := range ds.Rows {
		ds.Rows[i] = grid.RowData{
			Cells: []grid.Cell{
				grid.TextCell(fmt.Sprintf("Row %d", i)),
				grid.TextCell(pick(demoParts)),
				grid.TextCell(pick(demoStatus)),
				grid.TextCell(pick(demoSuppliers)),
				grid.BoolCell(r.Intn(2) == 0),
			},
			Detail: demoDetail(i, pick),
		}
	}
	return ds
}

func demoDetail(row int, pick func([]string) string) [][]string {
	lines := make([][]string, 3)
	for j := range lines {
		lines[j] = []string{
			fmt.Sprintf("NCR-%04d-%d", row, j+1),
			pick(demoDispositions),
			"",
		}
	}
	return lines
}
