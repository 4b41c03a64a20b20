package db

import (
	"context"
	"database/sql"
	"fmt"

	"subgrid/internal/grid"
	"subgrid/internal/source"
)

// LoadDataset runs the master and detail queries of a table spec and pairs
// their results.
//
// The first column of both queries is the row key: master rows are keyed by
// it and detail lines are attached to the master row with the same key, in
// query order. The remaining columns are the cells.
func LoadDataset(ctx context.Context, db *sql.DB, spec source.TableSpec) (grid.Dataset, error) {
	if spec.MasterQuery == "" {
		return grid.Dataset{}, fmt.Errorf("table has no master query")
	}

	names, master, err := queryStrings(ctx, db, spec.MasterQuery)
	if err != nil {
		return grid.Dataset{}, fmt.Errorf("failed to load master rows: %w", err)
	}
	if len(names) < 2 {
		return grid.Dataset{}, fmt.Errorf("master query must return a key column and at least one cell column")
	}

	cols, err := spec.Columns(names[1:])
	if err != nil {
		return grid.Dataset{}, err
	}

	records := make([][]string, len(master))
	for i, rec := range master {
		records[i] = rec[1:]
	}

	detailColumns := spec.DetailColumns
	var details [][][]string
	if spec.DetailQuery != "" {
		detailNames, lines, err := queryStrings(ctx, db, spec.DetailQuery)
		if err != nil {
			return grid.Dataset{}, fmt.Errorf("failed to load detail rows: %w", err)
		}
		if len(detailNames) < 2 {
			return grid.Dataset{}, fmt.Errorf("detail query must return a key column and at least one cell column")
		}
		if len(detailColumns) == 0 {
			detailColumns = detailNames[1:]
		} else if len(detailColumns) != len(detailNames)-1 {
			return grid.Dataset{}, fmt.Errorf("detail query returns %d cell columns but %d detail columns are configured",
				len(detailNames)-1, len(detailColumns))
		}

		byKey := make(map[string][][]string)
		for _, line := range lines {
			byKey[line[0]] = append(byKey[line[0]], line[1:])
		}
		details = make([][][]string, len(master))
		for i, rec := range master {
			details[i] = byKey[rec[0]]
		}
	}

	return grid.Dataset{
		Columns:       cols,
		DetailColumns: detailColumns,
		Rows:          source.Rows(cols, records, details),
	}, nil
}

// queryStrings runs a query and returns its column names and every row as
// strings. NULL becomes the empty string.
func queryStrings(ctx context.Context, db *sql.DB, query string) ([]string, [][]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var results [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(names))
		dest := make([]any, len(names))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rec := make([]string, len(names))
		for i, v := range values {
			rec[i] = v.String
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return names, results, nil
}
