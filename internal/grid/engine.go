// Package grid keeps filters, sort order, master/detail pairing and column
// position remapping of an interactive table mutually consistent.
//
// An Engine is owned by a single goroutine. Every command runs synchronously
// and never blocks; rendering code submits commands and reads snapshots, it
// never mutates engine state.
package grid

import (
	"fmt"
	"io"
	"log"
)

// DetailDeriver computes a master cell from the detail grid of the same row.
type DetailDeriver func(detail [][]string) Cell

// Column is a column's stable identity. Its visual position lives in the
// ColumnMapper.
type Column struct {
	Logical  int
	Label    string
	Checkbox bool
	Derive   DetailDeriver
}

// ColumnSpec describes a column when loading a dataset.
type ColumnSpec struct {
	Label    string
	Checkbox bool
	Derive   DetailDeriver
}

// RowData is one master row and its detail grid when loading a dataset.
type RowData struct {
	Cells  []Cell
	Detail [][]string
}

// Dataset is a complete table population.
type Dataset struct {
	Columns       []ColumnSpec
	DetailColumns []string
	Rows          []RowData
}

// Options configures an Engine.
type Options struct {
	// DetailColumns labels the columns of every detail grid. Detail edits
	// must supply exactly this many cells per line.
	DetailColumns []string
	Logger        *log.Logger
}

// Engine is the filter/sort/pairing engine.
type Engine struct {
	columns  []Column
	mapper   *ColumnMapper
	filters  []*ColumnFilter
	catalogs []Catalog

	rows    map[RowID]*Row
	slots   []RowID
	pairing *Pairing
	nextID  RowID

	detailColumns []string
	sort          SortState

	listeners []Listener
	tx        batch
	logger    *log.Logger
}

// New creates an empty engine.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	e := &Engine{
		mapper:        NewColumnMapper(0),
		rows:          make(map[RowID]*Row),
		pairing:       NewPairing(),
		detailColumns: append([]string(nil), opts.DetailColumns...),
		logger:        logger,
	}
	e.tx.reset()
	return e
}

// Subscribe registers a listener for engine events.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

func (e *Engine) logf(format string, args ...any) {
	e.logger.Printf(format, args...)
}

// SetColumnCount resizes the column set. Existing labels are kept, new columns
// are labelled by position, every row is padded or truncated, the mapper is
// reset to identity and all filters and catalogs are rebuilt.
func (e *Engine) SetColumnCount(n int) error {
	if n < 0 {
		return configErr("set column count", "negative count %d", n)
	}
	labels := make([]string, n)
	for i := range labels {
		if i < len(e.columns) {
			labels[i] = e.columns[i].Label
		} else {
			labels[i] = fmt.Sprintf("Column %d", i+1)
		}
	}
	return e.SetColumns(labels)
}

// SetColumns replaces the column set with one column per label. Columns that
// already existed at the same logical index keep their checkbox and derive
// settings.
func (e *Engine) SetColumns(labels []string) error {
	specs := make([]ColumnSpec, len(labels))
	for i, l := range labels {
		specs[i] = ColumnSpec{Label: l}
		if i < len(e.columns) {
			specs[i].Checkbox = e.columns[i].Checkbox
			specs[i].Derive = e.columns[i].Derive
		}
	}
	return e.Batch(func() error {
		e.resetColumns(specs)
		for _, id := range e.slots {
			r := e.rows[id]
			r.Cells = e.fitCells(r.Cells)
		}
		e.rebuildFilters()
		return nil
	})
}

// SetRowCount destroys every row and creates n blank rows with empty detail
// grids. The mapper is reset and filters and catalogs are rebuilt.
func (e *Engine) SetRowCount(n int) error {
	if n < 0 {
		return configErr("set row count", "negative count %d", n)
	}
	return e.Batch(func() error {
		e.resetRows()
		for i := 0; i < n; i++ {
			e.appendRow(e.fitCells(nil), [][]string{})
		}
		e.mapper.Reset(len(e.columns))
		e.rebuildFilters()
		e.emit(RowOrderChanged{Order: e.Order()})
		return nil
	})
}

// Load replaces columns and rows with a dataset in one batch.
func (e *Engine) Load(ds Dataset) error {
	width := len(ds.DetailColumns)
	for i, rd := range ds.Rows {
		if len(rd.Cells) != len(ds.Columns) {
			return configErr("load", "row %d has %d cells, want %d", i, len(rd.Cells), len(ds.Columns))
		}
		for j, line := range rd.Detail {
			if len(line) != width {
				return configErr("load", "row %d detail line %d has %d cells, want %d", i, j, len(line), width)
			}
		}
	}
	return e.Batch(func() error {
		e.detailColumns = append([]string(nil), ds.DetailColumns...)
		e.resetColumns(ds.Columns)
		e.resetRows()
		for _, rd := range ds.Rows {
			r := e.appendRow(append([]Cell(nil), rd.Cells...), cloneGrid(rd.Detail))
			e.deriveCells(r)
		}
		e.rebuildFilters()
		e.emit(RowOrderChanged{Order: e.Order()})
		e.logf("loaded %d rows x %d columns", len(ds.Rows), len(ds.Columns))
		return nil
	})
}

// SetCell stores a text value and rebuilds the column's catalog.
func (e *Engine) SetCell(id RowID, logical int, value string) error {
	return e.setCell("set cell", id, logical, TextCell(value))
}

// SetCheckboxCell stores a checkbox value and rebuilds the column's catalog.
func (e *Engine) SetCheckboxCell(id RowID, logical int, checked bool) error {
	return e.setCell("set checkbox cell", id, logical, BoolCell(checked))
}

func (e *Engine) setCell(op string, id RowID, logical int, c Cell) error {
	r, err := e.row(op, id)
	if err != nil {
		return err
	}
	if err := e.checkColumn(op, logical); err != nil {
		return err
	}
	r.Cells[logical] = c
	e.emit(DataChanged{ID: id, Column: logical})
	e.refreshCatalog(logical)
	return nil
}

// MoveColumn reorders columns by visual position.
func (e *Engine) MoveColumn(fromVisual, toVisual int) error {
	if err := e.mapper.MoveColumn(fromVisual, toVisual); err != nil {
		return err
	}
	if fromVisual != toVisual {
		e.emit(ColumnMoved{From: fromVisual, To: toVisual})
	}
	return nil
}

// ToggleDetailRow expands or collapses the detail row of a master row. On a
// filtered-out row only the flag changes.
func (e *Engine) ToggleDetailRow(id RowID) error {
	r, err := e.row("toggle detail row", id)
	if err != nil {
		return err
	}
	expanded := e.pairing.Toggle(id)
	if r.visible {
		e.emit(DetailVisibilityChanged{ID: id, Visible: expanded})
	}
	return nil
}

func (e *Engine) resetColumns(specs []ColumnSpec) {
	e.columns = make([]Column, len(specs))
	for i, s := range specs {
		e.columns[i] = Column{Logical: i, Label: s.Label, Checkbox: s.Checkbox, Derive: s.Derive}
	}
	e.mapper.Reset(len(specs))
	e.sort = SortState{}
}

func (e *Engine) resetRows() {
	e.rows = make(map[RowID]*Row)
	e.slots = nil
	e.pairing.reset()
	e.nextID = 0
	e.sort = SortState{}
}

func (e *Engine) appendRow(cells []Cell, detail [][]string) *Row {
	id := e.nextID
	e.nextID++
	r := &Row{ID: id, Cells: cells, visible: true}
	e.rows[id] = r
	e.slots = append(e.slots, id)
	e.pairing.Attach(id, detail)
	return r
}

// fitCells pads or truncates cells to the column count. Padding uses an
// unchecked checkbox for checkbox columns and a blank text cell otherwise.
func (e *Engine) fitCells(cells []Cell) []Cell {
	out := make([]Cell, len(e.columns))
	copy(out, cells)
	for i := len(cells); i < len(out); i++ {
		if e.columns[i].Checkbox {
			out[i] = BoolCell(false)
		} else {
			out[i] = TextCell("")
		}
	}
	return out
}

// rebuildFilters rebuilds every catalog from scratch, accepts everything and
// re-evaluates every row.
func (e *Engine) rebuildFilters() {
	rows := e.orderedRows()
	e.catalogs = make([]Catalog, len(e.columns))
	e.filters = make([]*ColumnFilter, len(e.columns))
	for l := range e.columns {
		e.catalogs[l] = BuildCatalog(rows, l)
		e.filters[l] = NewColumnFilter(e.catalogs[l])
		e.emit(FilterCatalogChanged{Column: l, Options: e.catalogs[l].Options()})
	}
	e.refreshAll()
}

// refreshCatalog rebuilds one catalog after a data change, carries the
// filter's checked state over to it and re-evaluates every row.
func (e *Engine) refreshCatalog(logical int) {
	prev := e.catalogs[logical]
	next := BuildCatalog(e.orderedRows(), logical)
	e.filters[logical].rebase(prev, next)
	e.catalogs[logical] = next
	if !prev.equal(next) {
		e.emit(FilterCatalogChanged{Column: logical, Options: next.Options()})
	}
	e.refreshAll()
}

func (e *Engine) row(op string, id RowID) (*Row, error) {
	r, ok := e.rows[id]
	if !ok {
		return nil, configErr(op, "unknown row %d", id)
	}
	return r, nil
}

func (e *Engine) checkColumn(op string, logical int) error {
	if logical < 0 || logical >= len(e.columns) {
		return configErr(op, "logical column %d out of range [0,%d)", logical, len(e.columns))
	}
	return nil
}

func (e *Engine) orderedRows() []*Row {
	out := make([]*Row, len(e.slots))
	for i, id := range e.slots {
		out[i] = e.rows[id]
	}
	return out
}
