package grid

// IsRowVisible reports whether every column filter accepts the row.
func (e *Engine) IsRowVisible(id RowID) bool {
	r, ok := e.rows[id]
	return ok && r.visible
}

// ToggleFilterValue flips the checked state of one catalog value. Values that
// are not in the catalog are ignored.
func (e *Engine) ToggleFilterValue(logical int, value string) error {
	if err := e.checkColumn("toggle filter value", logical); err != nil {
		return err
	}
	return e.SetFilterValue(logical, value, !e.filters[logical].IsAccepted(value))
}

// SetFilterValue checks or unchecks one catalog value and re-evaluates the
// rows holding that value.
func (e *Engine) SetFilterValue(logical int, value string, accepted bool) error {
	if err := e.checkColumn("set filter value", logical); err != nil {
		return err
	}
	if !e.catalogs[logical].Contains(value) {
		return nil
	}
	e.filters[logical].SetAccepted(value, accepted)
	for _, r := range e.orderedRows() {
		c := r.cell(logical)
		if !c.IsBlank() && c.Value() == value {
			e.setVisible(r, e.evaluate(r))
		}
	}
	return nil
}

// SetBlanksVisible shows or hides rows whose cell at the column is blank.
func (e *Engine) SetBlanksVisible(logical int, visible bool) error {
	if err := e.checkColumn("set blanks visible", logical); err != nil {
		return err
	}
	mode := BlanksHide
	if visible {
		mode = BlanksShow
	}
	return e.Batch(func() error {
		e.filters[logical].SetBlanks(mode)
		for _, r := range e.orderedRows() {
			if r.cell(logical).IsBlank() {
				e.setVisible(r, e.evaluate(r))
			}
		}
		return nil
	})
}

// SelectAllFilter accepts every value of the column and shows its blanks.
// Other columns keep their filters, so a row may stay hidden.
func (e *Engine) SelectAllFilter(logical int) error {
	if err := e.checkColumn("select all filter", logical); err != nil {
		return err
	}
	return e.Batch(func() error {
		e.filters[logical].SelectAll(e.catalogs[logical])
		e.refreshAll()
		return nil
	})
}

// ClearFilter accepts nothing in the column and hides its blanks.
func (e *Engine) ClearFilter(logical int) error {
	if err := e.checkColumn("clear filter", logical); err != nil {
		return err
	}
	return e.Batch(func() error {
		e.filters[logical].Clear()
		e.refreshAll()
		return nil
	})
}

// ResetFilters accepts everything in every column.
func (e *Engine) ResetFilters() error {
	return e.Batch(func() error {
		for l, f := range e.filters {
			f.SelectAll(e.catalogs[l])
		}
		e.refreshAll()
		return nil
	})
}

// ApplyFilterOption runs the action behind one filter menu entry.
func (e *Engine) ApplyFilterOption(logical int, opt FilterOption) error {
	switch opt.Kind {
	case OptionKindAll:
		return e.SelectAllFilter(logical)
	case OptionKindClear:
		return e.ClearFilter(logical)
	case OptionKindShowBlanks:
		return e.SetBlanksVisible(logical, true)
	case OptionKindHideBlanks:
		return e.SetBlanksVisible(logical, false)
	default:
		return e.ToggleFilterValue(logical, opt.Label)
	}
}

func (e *Engine) evaluate(r *Row) bool {
	for l, f := range e.filters {
		if !f.Accepts(r.cell(l)) {
			return false
		}
	}
	return true
}

func (e *Engine) refreshAll() {
	for _, id := range e.slots {
		r := e.rows[id]
		e.setVisible(r, e.evaluate(r))
	}
}

// setVisible applies a filter verdict. Hiding a row hides its detail and
// collapses it, so the row comes back collapsed.
func (e *Engine) setVisible(r *Row, visible bool) {
	if r.visible == visible {
		return
	}
	r.visible = visible
	e.emit(RowVisibilityChanged{ID: r.ID, Visible: visible})
	if !visible && e.pairing.Collapse(r.ID) {
		e.emit(DetailVisibilityChanged{ID: r.ID, Visible: false})
	}
}
