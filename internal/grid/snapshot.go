package grid

// RowView is a read-only copy of a master row and its detail row.
type RowView struct {
	ID       RowID
	Cells    []Cell
	Visible  bool
	Expanded bool
	Detail   [][]string
}

// DetailShown reports whether the detail row is on screen.
func (v RowView) DetailShown() bool { return v.Visible && v.Expanded }

// Cell returns the cell at a logical column.
func (v RowView) Cell(logical int) Cell {
	if logical < 0 || logical >= len(v.Cells) {
		return Cell{}
	}
	return v.Cells[logical]
}

// OptionKind identifies a filter menu entry.
type OptionKind int

const (
	OptionKindAll OptionKind = iota
	OptionKindClear
	OptionKindShowBlanks
	OptionKindHideBlanks
	OptionKindValue
)

// FilterOption is one filter menu entry with its checked state.
type FilterOption struct {
	Kind    OptionKind
	Label   string
	Checked bool
}

func (e *Engine) view(r *Row) RowView {
	d := e.pairing.Detail(r.ID)
	return RowView{
		ID:       r.ID,
		Cells:    append([]Cell(nil), r.Cells...),
		Visible:  r.visible,
		Expanded: d.Expanded,
		Detail:   cloneGrid(d.Cells),
	}
}

// Rows returns every row in slot order.
func (e *Engine) Rows() []RowView {
	out := make([]RowView, 0, len(e.slots))
	for _, r := range e.orderedRows() {
		out = append(out, e.view(r))
	}
	return out
}

// VisibleRows returns the rows that pass the filters, in slot order.
func (e *Engine) VisibleRows() []RowView {
	var out []RowView
	for _, r := range e.orderedRows() {
		if r.visible {
			out = append(out, e.view(r))
		}
	}
	return out
}

// Row returns one row.
func (e *Engine) Row(id RowID) (RowView, bool) {
	r, ok := e.rows[id]
	if !ok {
		return RowView{}, false
	}
	return e.view(r), true
}

// Order returns the row ids in slot order.
func (e *Engine) Order() []RowID {
	return append([]RowID(nil), e.slots...)
}

// RowCount returns the number of master rows.
func (e *Engine) RowCount() int { return len(e.slots) }

// ColumnCount returns the number of columns.
func (e *Engine) ColumnCount() int { return len(e.columns) }

// Columns returns the columns in visual order.
func (e *Engine) Columns() []Column {
	out := make([]Column, 0, len(e.columns))
	for _, l := range e.mapper.Order() {
		out = append(out, e.columns[l])
	}
	return out
}

// Column returns the column with a logical index.
func (e *Engine) Column(logical int) (Column, bool) {
	if logical < 0 || logical >= len(e.columns) {
		return Column{}, false
	}
	return e.columns[logical], true
}

// VisualOf returns the visual position of a logical column, or -1.
func (e *Engine) VisualOf(logical int) int { return e.mapper.VisualOf(logical) }

// LogicalOf returns the logical column at a visual position, or -1.
func (e *Engine) LogicalOf(visual int) int { return e.mapper.LogicalOf(visual) }

// VisualOrder returns the logical indices in visual order.
func (e *Engine) VisualOrder() []int { return e.mapper.Order() }

// Catalog returns the filter catalog of a column.
func (e *Engine) Catalog(logical int) Catalog {
	if logical < 0 || logical >= len(e.catalogs) {
		return Catalog{}
	}
	c := e.catalogs[logical]
	c.Values = append([]string(nil), c.Values...)
	return c
}

// IsFiltered reports whether the column filter can hide any row.
func (e *Engine) IsFiltered(logical int) bool {
	if logical < 0 || logical >= len(e.filters) {
		return false
	}
	return e.filters[logical].IsActive(e.catalogs[logical])
}

// Blanks returns the blank-handling mode of a column.
func (e *Engine) Blanks(logical int) BlanksMode {
	if logical < 0 || logical >= len(e.filters) {
		return BlanksShow
	}
	return e.filters[logical].Blanks()
}

// FilterOptions returns the filter menu of a column in display order.
func (e *Engine) FilterOptions(logical int) []FilterOption {
	if logical < 0 || logical >= len(e.filters) {
		return nil
	}
	f, cat := e.filters[logical], e.catalogs[logical]

	all, none := f.Blanks() == BlanksShow, f.Blanks() == BlanksHide
	if !cat.OffersBlanks() {
		all, none = true, true
	}
	for _, v := range cat.Values {
		if f.IsAccepted(v) {
			none = false
		} else {
			all = false
		}
	}

	opts := []FilterOption{
		{Kind: OptionKindAll, Label: OptionAll, Checked: all},
		{Kind: OptionKindClear, Label: OptionClear, Checked: none},
	}
	if cat.OffersBlanks() {
		opts = append(opts,
			FilterOption{Kind: OptionKindShowBlanks, Label: OptionShowBlanks, Checked: f.Blanks() == BlanksShow},
			FilterOption{Kind: OptionKindHideBlanks, Label: OptionHideBlanks, Checked: f.Blanks() == BlanksHide},
		)
	}
	for _, v := range cat.Values {
		opts = append(opts, FilterOption{Kind: OptionKindValue, Label: v, Checked: f.IsAccepted(v)})
	}
	return opts
}
