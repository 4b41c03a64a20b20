package ui

import (
	"fmt"
	"strings"

	"subgrid/internal/grid"
	"subgrid/internal/util"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderStatic renders the engine's visible rows once, for output that is not
// a terminal. With detail set, the detail grid of every visible row follows
// the master table.
func RenderStatic(engine *grid.Engine, width int, detail bool) string {
	columns := engine.Columns()
	if len(columns) == 0 {
		return "No columns.\n"
	}

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Label
	}

	rows := engine.VisibleRows()
	cellWidth := min(maxColumnWidth, max(minColumnWidth, width/len(columns)-3))
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = make([]string, len(columns))
		for j, c := range columns {
			cell := r.Cell(c.Logical)
			if cell.Kind == grid.CellBool {
				data[i][j] = util.FormatCheckbox(cell.Checked)
			} else {
				data[i][j] = util.TruncateString(cell.Text, cellWidth)
			}
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(DetailBorderStyle).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.UnsetBackground()
			}
			return NormalRowStyle
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d of %s\n", len(rows), util.FormatCount(engine.RowCount(), "row"))

	if !detail {
		return b.String()
	}
	labels := engine.DetailColumns()
	for i, r := range rows {
		if len(r.Detail) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", LabelStyle.Render(data[i][0]))
		b.WriteString(renderDetailTable(labels, r.Detail, width))
		b.WriteString("\n")
	}
	return b.String()
}
