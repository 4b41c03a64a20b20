package grid

import "fmt"

// EditDetailRow replaces the detail grid of a master row. The edit is all or
// nothing: a grid whose lines do not match the detail column count is
// rejected with a *ValidationError and the previous grid is kept.
func (e *Engine) EditDetailRow(id RowID, cells [][]string) error {
	r, err := e.row("edit detail row", id)
	if err != nil {
		return err
	}
	if err := e.validateDetail(id, cells); err != nil {
		return err
	}

	d := e.pairing.Detail(id)
	d.Cells = cloneGrid(cells)
	e.emit(DataChanged{ID: id, Column: -1})
	e.emit(DetailResized{ID: id, Lines: d.Lines()})

	for _, l := range e.deriveCells(r) {
		e.emit(DataChanged{ID: id, Column: l})
		e.refreshCatalog(l)
	}
	return nil
}

// DetailColumns returns the detail grid column labels.
func (e *Engine) DetailColumns() []string {
	return append([]string(nil), e.detailColumns...)
}

func (e *Engine) validateDetail(id RowID, cells [][]string) error {
	width := len(e.detailColumns)
	if width == 0 && len(cells) > 0 {
		width = len(cells[0])
	}
	for i, line := range cells {
		if len(line) != width {
			return &ValidationError{ID: id, Reason: fmt.Sprintf("line %d has %d cells, want %d", i, len(line), width)}
		}
	}
	return nil
}

// deriveCells recomputes the cells of derived columns from the row's detail
// grid and returns the logical columns whose cell changed.
func (e *Engine) deriveCells(r *Row) []int {
	var changed []int
	d := e.pairing.Detail(r.ID)
	for _, c := range e.columns {
		if c.Derive == nil {
			continue
		}
		next := c.Derive(d.Cells)
		if r.Cells[c.Logical] != next {
			r.Cells[c.Logical] = next
			changed = append(changed, c.Logical)
		}
	}
	return changed
}
