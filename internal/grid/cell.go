package grid

import "strings"

// CellKind discriminates text cells from checkbox cells.
type CellKind int

const (
	CellText CellKind = iota
	CellBool
)

// Literal values a checkbox cell contributes to filtering, sorting and display.
const (
	TrueValue  = "True"
	FalseValue = "False"
)

// Cell is a single master-row cell.
type Cell struct {
	Kind    CellKind
	Text    string
	Checked bool
}

// TextCell creates a text cell.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// BoolCell creates a checkbox cell.
func BoolCell(checked bool) Cell {
	return Cell{Kind: CellBool, Checked: checked}
}

// Value returns the string the cell is filtered, sorted and rendered by.
func (c Cell) Value() string {
	if c.Kind == CellBool {
		if c.Checked {
			return TrueValue
		}
		return FalseValue
	}
	return c.Text
}

// IsBlank reports whether the cell counts as blank for filtering.
// Checkbox cells are never blank.
func (c Cell) IsBlank() bool {
	return c.Kind == CellText && strings.TrimSpace(c.Text) == ""
}

// RowID identifies a master row for its whole lifetime.
type RowID int

// Row is a master row. Its visibility is owned by the engine.
type Row struct {
	ID      RowID
	Cells   []Cell
	visible bool
}

// Visible reports whether the row passes every column filter.
func (r *Row) Visible() bool { return r.visible }

// cell returns the cell at a logical column, or a blank text cell if the row
// is shorter than the column set.
func (r *Row) cell(logical int) Cell {
	if logical < 0 || logical >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[logical]
}

// DetailRow is the nested sub-table attached to exactly one master row.
type DetailRow struct {
	ParentID RowID
	Cells    [][]string
	Expanded bool
}

// Lines returns the number of lines in the sub-table.
func (d *DetailRow) Lines() int { return len(d.Cells) }

func cloneGrid(cells [][]string) [][]string {
	out := make([][]string, len(cells))
	for i, line := range cells {
		out[i] = append([]string(nil), line...)
	}
	return out
}
