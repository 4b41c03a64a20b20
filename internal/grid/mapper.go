package grid

// ColumnMapper maps between a column's logical index (its identity) and its
// visual index (its on-screen position).
type ColumnMapper struct {
	order []int // visual -> logical
	pos   []int // logical -> visual
}

// NewColumnMapper returns an identity mapping over n columns.
func NewColumnMapper(n int) *ColumnMapper {
	m := &ColumnMapper{}
	m.Reset(n)
	return m
}

// Reset discards every move and restores the identity mapping over n columns.
func (m *ColumnMapper) Reset(n int) {
	if n < 0 {
		n = 0
	}
	m.order = make([]int, n)
	m.pos = make([]int, n)
	for i := 0; i < n; i++ {
		m.order[i] = i
		m.pos[i] = i
	}
}

// Len returns the number of columns.
func (m *ColumnMapper) Len() int { return len(m.order) }

// VisualOf returns the on-screen position of a logical column, or -1.
func (m *ColumnMapper) VisualOf(logical int) int {
	if logical < 0 || logical >= len(m.pos) {
		return -1
	}
	return m.pos[logical]
}

// LogicalOf returns the logical column shown at a visual position, or -1.
func (m *ColumnMapper) LogicalOf(visual int) int {
	if visual < 0 || visual >= len(m.order) {
		return -1
	}
	return m.order[visual]
}

// Order returns the logical indices in visual order.
func (m *ColumnMapper) Order() []int {
	return append([]int(nil), m.order...)
}

// MoveColumn takes the column at visual position from out and reinserts it at
// visual position to, shifting the columns in between by one.
func (m *ColumnMapper) MoveColumn(from, to int) error {
	n := len(m.order)
	if from < 0 || from >= n || to < 0 || to >= n {
		return configErr("move column", "visual indices %d -> %d out of range [0,%d)", from, to, n)
	}
	if from == to {
		return nil
	}
	moved := m.order[from]
	if from < to {
		copy(m.order[from:to], m.order[from+1:to+1])
	} else {
		copy(m.order[to+1:from+1], m.order[to:from])
	}
	m.order[to] = moved

	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	for v := lo; v <= hi; v++ {
		m.pos[m.order[v]] = v
	}
	return nil
}
