// Package source turns table definitions and raw records into grid datasets.
package source

import (
	"fmt"
	"strconv"
	"strings"

	"subgrid/internal/grid"
)

// TableSpec describes where a table's master and detail rows come from and
// how their columns are presented.
type TableSpec struct {
	Title         string        `yaml:"title"`
	MasterQuery   string        `yaml:"master_query"`
	DetailQuery   string        `yaml:"detail_query"`
	Labels        []string      `yaml:"labels"`
	Checkbox      []string      `yaml:"checkbox"`
	DetailColumns []string      `yaml:"detail_columns"`
	Derived       []DerivedSpec `yaml:"derived"`
}

// DerivedSpec adds a master column computed from the detail grid.
type DerivedSpec struct {
	Label string `yaml:"label"`
	// Kind is one of "count", "first" or "distinct".
	Kind   string `yaml:"kind"`
	Column int    `yaml:"column"`
}

// Deriver returns the function computing the derived cell.
func (d DerivedSpec) Deriver() (grid.DetailDeriver, error) {
	switch d.Kind {
	case "count":
		return CountLines, nil
	case "first":
		return FirstValue(d.Column), nil
	case "distinct":
		return DistinctValues(d.Column), nil
	default:
		return nil, fmt.Errorf("unknown derived column kind %q", d.Kind)
	}
}

// CountLines derives the number of detail lines.
func CountLines(detail [][]string) grid.Cell {
	if len(detail) == 0 {
		return grid.TextCell("")
	}
	return grid.TextCell(strconv.Itoa(len(detail)))
}

// FirstValue derives the first non-blank value of a detail column.
func FirstValue(column int) grid.DetailDeriver {
	return func(detail [][]string) grid.Cell {
		for _, line := range detail {
			if column < len(line) && strings.TrimSpace(line[column]) != "" {
				return grid.TextCell(line[column])
			}
		}
		return grid.TextCell("")
	}
}

// DistinctValues derives the distinct values of a detail column joined in
// first-seen order.
func DistinctValues(column int) grid.DetailDeriver {
	return func(detail [][]string) grid.Cell {
		seen := make(map[string]bool)
		var out []string
		for _, line := range detail {
			if column >= len(line) {
				continue
			}
			v := strings.TrimSpace(line[column])
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
		return grid.TextCell(strings.Join(out, ", "))
	}
}

// Columns builds the column set for a table whose records carry the given
// labels: labels listed in Checkbox become checkbox columns and every derived
// column is appended after them. Labels overrides the record labels when set.
func (s TableSpec) Columns(labels []string) ([]grid.ColumnSpec, error) {
	if len(s.Labels) > 0 {
		if len(s.Labels) != len(labels) {
			return nil, fmt.Errorf("table has %d columns but %d labels are configured", len(labels), len(s.Labels))
		}
		labels = s.Labels
	}
	checkbox := make(map[string]bool, len(s.Checkbox))
	for _, c := range s.Checkbox {
		checkbox[c] = true
	}

	specs := make([]grid.ColumnSpec, 0, len(labels)+len(s.Derived))
	for _, l := range labels {
		specs = append(specs, grid.ColumnSpec{Label: l, Checkbox: checkbox[l]})
		delete(checkbox, l)
	}
	for l := range checkbox {
		return nil, fmt.Errorf("checkbox column %q not found", l)
	}
	for _, d := range s.Derived {
		fn, err := d.Deriver()
		if err != nil {
			return nil, fmt.Errorf("derived column %q: %w", d.Label, err)
		}
		specs = append(specs, grid.ColumnSpec{Label: d.Label, Derive: fn})
	}
	return specs, nil
}

// Cell converts a raw record value for a column.
func Cell(col grid.ColumnSpec, raw string) grid.Cell {
	if col.Checkbox {
		return grid.BoolCell(ParseBool(raw))
	}
	return grid.TextCell(raw)
}

// ParseBool reads the usual spellings of a checked box. Anything else is
// unchecked.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "x", "on":
		return true
	}
	return false
}

// Rows assembles master records and their detail grids into dataset rows.
// Derived columns start blank and are filled in by the engine.
func Rows(cols []grid.ColumnSpec, records [][]string, details [][][]string) []grid.RowData {
	rows := make([]grid.RowData, len(records))
	for i, rec := range records {
		cells := make([]grid.Cell, len(cols))
		for j, col := range cols {
			raw := ""
			if j < len(rec) && col.Derive == nil {
				raw = rec[j]
			}
			cells[j] = Cell(col, raw)
		}
		rows[i].Cells = cells
		if i < len(details) && details[i] != nil {
			rows[i].Detail = details[i]
		} else {
			rows[i].Detail = [][]string{}
		}
	}
	return rows
}
