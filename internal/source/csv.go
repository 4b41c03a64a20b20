package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"subgrid/internal/grid"
)

// ReadCSV loads a master table from a CSV file whose first record holds the
// column labels. Rows get empty detail grids.
func ReadCSV(path string, spec TableSpec) (grid.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return grid.Dataset{}, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()
	return DecodeCSV(f, spec)
}

// DecodeCSV reads a master table in CSV form.
func DecodeCSV(r io.Reader, spec TableSpec) (grid.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return grid.Dataset{}, fmt.Errorf("csv has no header row")
	}
	if err != nil {
		return grid.Dataset{}, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols, err := spec.Columns(header)
	if err != nil {
		return grid.Dataset{}, err
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return grid.Dataset{}, fmt.Errorf("failed to read csv record: %w", err)
		}
		records = append(records, rec)
	}

	return grid.Dataset{
		Columns:       cols,
		DetailColumns: spec.DetailColumns,
		Rows:          Rows(cols, records, nil),
	}, nil
}
