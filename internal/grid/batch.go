package grid

import "time"

// batch coalesces notifications while a bulk operation runs. Nested Batch
// calls share the outermost batch.
type batch struct {
	depth   int
	started time.Time

	before   map[RowID]bool
	after    map[RowID]bool
	cells    int
	resized  map[RowID]struct{}
	resizeAt []RowID

	order        *RowOrderChanged
	catalogs     map[int]FilterCatalogChanged
	catalogOrder []int
}

func (b *batch) reset() {
	b.before = make(map[RowID]bool)
	b.after = make(map[RowID]bool)
	b.cells = 0
	b.resized = make(map[RowID]struct{})
	b.resizeAt = nil
	b.order = nil
	b.catalogs = make(map[int]FilterCatalogChanged)
	b.catalogOrder = nil
}

func (b *batch) absorb(ev Event) {
	switch ev := ev.(type) {
	case RowVisibilityChanged:
		if _, ok := b.before[ev.ID]; !ok {
			b.before[ev.ID] = !ev.Visible
		}
		b.after[ev.ID] = ev.Visible
	case DataChanged:
		b.cells++
	case DetailResized:
		if _, ok := b.resized[ev.ID]; !ok {
			b.resized[ev.ID] = struct{}{}
			b.resizeAt = append(b.resizeAt, ev.ID)
		}
	case RowOrderChanged:
		o := ev
		b.order = &o
	case FilterCatalogChanged:
		if _, ok := b.catalogs[ev.Column]; !ok {
			b.catalogOrder = append(b.catalogOrder, ev.Column)
		}
		b.catalogs[ev.Column] = ev
	}
	// DetailVisibilityChanged and ColumnMoved carry nothing the renderer cannot
	// read back from a snapshot after BulkChanged.
}

// flush returns the deferred events followed by the single BulkChanged.
func (b *batch) flush() []Event {
	var out []Event
	for _, col := range b.catalogOrder {
		out = append(out, b.catalogs[col])
	}
	if b.order != nil {
		out = append(out, *b.order)
	}
	bulk := BulkChanged{
		Visibility: make(map[RowID]bool),
		Cells:      b.cells,
		Resized:    b.resizeAt,
	}
	for id, v := range b.after {
		if b.before[id] != v {
			bulk.Visibility[id] = v
		}
	}
	return append(out, bulk)
}

// Batch runs fn with notifications suspended. Exactly one BulkChanged is
// emitted when the outermost Batch returns, whether fn returns normally,
// returns an error or panics.
func (e *Engine) Batch(fn func() error) error {
	e.begin()
	defer e.commit()
	return fn()
}

// InBatch reports whether a batch is open.
func (e *Engine) InBatch() bool { return e.tx.depth > 0 }

func (e *Engine) begin() {
	if e.tx.depth == 0 {
		e.tx.reset()
		e.tx.started = time.Now()
	}
	e.tx.depth++
}

func (e *Engine) commit() {
	e.tx.depth--
	if e.tx.depth > 0 {
		return
	}
	events := e.tx.flush()
	e.logf("batch committed in %s: %d cells, %d visibility changes",
		time.Since(e.tx.started), e.tx.cells, len(events[len(events)-1].(BulkChanged).Visibility))
	for _, ev := range events {
		e.notify(ev)
	}
}

func (e *Engine) emit(ev Event) {
	if e.tx.depth > 0 {
		e.tx.absorb(ev)
		return
	}
	e.notify(ev)
}

func (e *Engine) notify(ev Event) {
	for _, l := range e.listeners {
		l(ev)
	}
}
