package grid

import (
	"sort"
	"time"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortState is the last applied sort.
type SortState struct {
	Active    bool
	Column    int
	Direction Direction
}

// SortByColumn stably sorts the visible rows by the value at a logical column
// and places them ahead of the hidden rows, which keep their relative order.
// Every detail row moves with its master and is collapsed.
func (e *Engine) SortByColumn(logical int, dir Direction) error {
	if err := e.checkColumn("sort by column", logical); err != nil {
		return err
	}
	return e.Batch(func() error {
		start := time.Now()
		visible := make([]RowID, 0, len(e.slots))
		var hidden []RowID
		for _, id := range e.slots {
			if e.rows[id].visible {
				visible = append(visible, id)
			} else {
				hidden = append(hidden, id)
			}
		}

		sort.SliceStable(visible, func(i, j int) bool {
			a := e.rows[visible[i]].cell(logical).Value()
			b := e.rows[visible[j]].cell(logical).Value()
			if dir == Descending {
				return a > b
			}
			return a < b
		})

		order := make([]RowID, 0, len(e.slots))
		order = append(order, visible...)
		order = append(order, hidden...)
		e.slots = order

		for _, id := range e.slots {
			if e.pairing.Collapse(id) && e.rows[id].visible {
				e.emit(DetailVisibilityChanged{ID: id, Visible: false})
			}
		}
		e.sort = SortState{Active: true, Column: logical, Direction: dir}
		e.emit(RowOrderChanged{Order: e.Order()})
		e.logf("sorted %d of %d rows by column %d %s in %s",
			len(visible), len(order), logical, dir, time.Since(start))
		return nil
	})
}

// SortByVisual sorts by the column currently shown at a visual position.
func (e *Engine) SortByVisual(visual int, dir Direction) error {
	logical := e.mapper.LogicalOf(visual)
	if logical < 0 {
		return configErr("sort by visual", "visual column %d out of range [0,%d)", visual, e.mapper.Len())
	}
	return e.SortByColumn(logical, dir)
}

// ToggleSort sorts ascending by a new column, or flips the direction when the
// column is already the sort column.
func (e *Engine) ToggleSort(logical int) error {
	dir := Ascending
	if e.sort.Active && e.sort.Column == logical && e.sort.Direction == Ascending {
		dir = Descending
	}
	return e.SortByColumn(logical, dir)
}

// SortState returns the last applied sort.
func (e *Engine) SortState() SortState { return e.sort }
