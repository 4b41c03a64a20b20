package grid

// Pairing associates every master row with its detail row.
type Pairing struct {
	details map[RowID]*DetailRow
}

// NewPairing returns an empty association.
func NewPairing() *Pairing {
	return &Pairing{details: make(map[RowID]*DetailRow)}
}

// Attach creates the detail row of a master row.
func (p *Pairing) Attach(id RowID, cells [][]string) *DetailRow {
	d := &DetailRow{ParentID: id, Cells: cells}
	p.details[id] = d
	return d
}

// Detail returns the detail row of a master row. A missing detail row breaks
// the pairing invariant and panics with a *ConsistencyError.
func (p *Pairing) Detail(id RowID) *DetailRow {
	d, ok := p.details[id]
	if !ok {
		panic(&ConsistencyError{ID: id})
	}
	return d
}

// Len returns the number of paired rows.
func (p *Pairing) Len() int { return len(p.details) }

// Toggle flips the expanded flag and reports the new flag.
func (p *Pairing) Toggle(id RowID) bool {
	d := p.Detail(id)
	d.Expanded = !d.Expanded
	return d.Expanded
}

// Collapse clears the expanded flag and reports whether it was set.
func (p *Pairing) Collapse(id RowID) bool {
	d := p.Detail(id)
	was := d.Expanded
	d.Expanded = false
	return was
}

func (p *Pairing) reset() {
	p.details = make(map[RowID]*DetailRow)
}
