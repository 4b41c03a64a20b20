package cmd

import (
	"context"
	"fmt"
	"log"

	"subgrid/internal/db"
	"subgrid/internal/grid"
	"subgrid/internal/source"
)

// Loader returns the function reading the configured data source. It is
// called once at startup and again on every reload.
func (c *Config) Loader() func() (grid.Dataset, error) {
	switch c.Source {
	case SourceSQLite:
		return c.loadSQLite
	case SourceCSV:
		return func() (grid.Dataset, error) {
			return source.ReadCSV(c.CSVPath, c.Table)
		}
	default:
		return func() (grid.Dataset, error) {
			return source.Demo(c.Rows, c.Seed), nil
		}
	}
}

// Describe names the data source for the header and log.
func (c *Config) Describe() string {
	switch c.Source {
	case SourceSQLite:
		return c.DBPath
	case SourceCSV:
		return c.CSVPath
	default:
		return fmt.Sprintf("demo (%d rows)", c.Rows)
	}
}

func (c *Config) loadSQLite() (grid.Dataset, error) {
	database, err := db.Open(c.DBPath)
	if err != nil {
		return grid.Dataset{}, err
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	ds, err := db.LoadDataset(ctx, database, c.Table)
	if err != nil {
		return grid.Dataset{}, err
	}
	log.Printf("read %d rows from %s", len(ds.Rows), c.DBPath)
	return ds, nil
}
