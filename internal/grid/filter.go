package grid

// BlanksMode decides whether blank cells pass a column filter.
type BlanksMode int

const (
	BlanksShow BlanksMode = iota
	BlanksHide
)

func (b BlanksMode) String() string {
	if b == BlanksHide {
		return "hide"
	}
	return "show"
}

// ColumnFilter is the accepted-value set of one column.
type ColumnFilter struct {
	accepted map[string]struct{}
	blanks   BlanksMode
}

// NewColumnFilter accepts every catalog value and shows blanks.
func NewColumnFilter(cat Catalog) *ColumnFilter {
	f := &ColumnFilter{}
	f.SelectAll(cat)
	return f
}

// Accepts reports whether a cell passes the filter.
func (f *ColumnFilter) Accepts(c Cell) bool {
	if c.IsBlank() {
		return f.blanks == BlanksShow
	}
	_, ok := f.accepted[c.Value()]
	return ok
}

// IsAccepted reports whether a value is currently checked.
func (f *ColumnFilter) IsAccepted(v string) bool {
	_, ok := f.accepted[v]
	return ok
}

// Blanks returns the blank-handling mode.
func (f *ColumnFilter) Blanks() BlanksMode { return f.blanks }

// SetAccepted checks or unchecks one value.
func (f *ColumnFilter) SetAccepted(v string, accepted bool) {
	if accepted {
		f.accepted[v] = struct{}{}
	} else {
		delete(f.accepted, v)
	}
}

// SetBlanks sets the blank-handling mode.
func (f *ColumnFilter) SetBlanks(mode BlanksMode) { f.blanks = mode }

// SelectAll accepts every catalog value and shows blanks.
func (f *ColumnFilter) SelectAll(cat Catalog) {
	f.accepted = make(map[string]struct{}, len(cat.Values))
	for _, v := range cat.Values {
		f.accepted[v] = struct{}{}
	}
	f.blanks = BlanksShow
}

// Clear accepts nothing and hides blanks.
func (f *ColumnFilter) Clear() {
	f.accepted = make(map[string]struct{})
	f.blanks = BlanksHide
}

// IsActive reports whether the filter can hide any row of the catalog.
func (f *ColumnFilter) IsActive(cat Catalog) bool {
	if cat.OffersBlanks() && f.blanks == BlanksHide {
		return true
	}
	for _, v := range cat.Values {
		if !f.IsAccepted(v) {
			return true
		}
	}
	return false
}

// rebase moves the filter onto a freshly built catalog. Values that vanished
// are dropped, values that are new are accepted, and everything else keeps its
// checked state.
func (f *ColumnFilter) rebase(prev, next Catalog) {
	accepted := make(map[string]struct{}, len(next.Values))
	for _, v := range next.Values {
		if !prev.Contains(v) || f.IsAccepted(v) {
			accepted[v] = struct{}{}
		}
	}
	f.accepted = accepted
}
