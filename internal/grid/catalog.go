package grid

import (
	"slices"
	"sort"
)

// Fixed filter menu entries that precede the column's values.
const (
	OptionAll        = "All"
	OptionClear      = "Clear"
	OptionShowBlanks = "Show Blanks"
	OptionHideBlanks = "Hide Blanks"
)

// Catalog is the sorted set of distinct non-blank values observed in a column.
type Catalog struct {
	Values  []string
	HasBool bool
}

// BuildCatalog scans the cell at a logical column of every row.
func BuildCatalog(rows []*Row, logical int) Catalog {
	seen := make(map[string]struct{})
	var cat Catalog
	for _, r := range rows {
		c := r.cell(logical)
		if c.Kind == CellBool {
			cat.HasBool = true
		}
		if c.IsBlank() {
			continue
		}
		v := c.Value()
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		cat.Values = append(cat.Values, v)
	}
	sort.Strings(cat.Values)
	return cat
}

// Contains reports whether v is one of the catalog values.
func (c Catalog) Contains(v string) bool {
	_, found := slices.BinarySearch(c.Values, v)
	return found
}

// OffersBlanks reports whether the blanks toggles are part of the menu.
// A column holding checkboxes always has a True/False value, so blank
// filtering has nothing to act on.
func (c Catalog) OffersBlanks() bool { return !c.HasBool }

// Options returns the filter menu labels in display order.
func (c Catalog) Options() []string {
	opts := []string{OptionAll, OptionClear}
	if c.OffersBlanks() {
		opts = append(opts, OptionShowBlanks, OptionHideBlanks)
	}
	return append(opts, c.Values...)
}

func (c Catalog) equal(o Catalog) bool {
	return c.HasBool == o.HasBool && slices.Equal(c.Values, o.Values)
}
