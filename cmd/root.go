package cmd

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"subgrid/internal/source"
)

// Data source names accepted by -source.
const (
	SourceDemo   = "demo"
	SourceSQLite = "sqlite"
	SourceCSV    = "csv"
)

const (
	defaultRows    = 200
	defaultSeed    = 1
	defaultTimeout = 10 * time.Second
)

// Config holds CLI configuration.
type Config struct {
	Source     string
	DBPath     string
	CSVPath    string
	ConfigPath string
	Rows       int
	Seed       int64
	LogPath    string
	Timeout    time.Duration
	Dump       bool
	Detail     bool
	Version    bool

	// Table comes from the YAML file given with -config.
	Table source.TableSpec
}

// ParseFlags parses command-line arguments and returns configuration. Values
// are taken from flags first, then SUBGRID_* environment variables, then the
// YAML file, then defaults.
func ParseFlags(args []string) (*Config, error) {
	config := &Config{}

	// Load .env files first so env-based defaults work with existing flag parsing.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	fs := flag.NewFlagSet("subgrid", flag.ContinueOnError)
	fs.StringVar(&config.Source, "source", "", "Data source: demo, sqlite or csv (or set SUBGRID_SOURCE)")
	fs.StringVar(&config.DBPath, "db", "", "Path to SQLite database file (or set SUBGRID_DB)")
	fs.StringVar(&config.CSVPath, "csv", "", "Path to CSV file with a header row")
	fs.StringVar(&config.ConfigPath, "config", "", "Path to YAML table definition (or set SUBGRID_CONFIG)")
	fs.IntVar(&config.Rows, "rows", 0, "Number of rows generated by the demo source (default 200)")
	fs.Int64Var(&config.Seed, "seed", 0, "Random seed of the demo source (default 1)")
	fs.StringVar(&config.LogPath, "log", "", "Write debug log to this file (or set SUBGRID_LOG)")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Timeout for loading from SQLite (default 10s)")
	fs.BoolVar(&config.Dump, "dump", false, "Print the table once and exit instead of starting the UI")
	fs.BoolVar(&config.Detail, "detail", false, "With -dump, also print every detail grid")
	fs.BoolVar(&config.Version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	envFallback(&config.Source, "SUBGRID_SOURCE")
	envFallback(&config.DBPath, "SUBGRID_DB")
	envFallback(&config.ConfigPath, "SUBGRID_CONFIG")
	envFallback(&config.LogPath, "SUBGRID_LOG")

	if config.ConfigPath != "" {
		file, err := LoadFileConfig(config.ConfigPath)
		if err != nil {
			return nil, err
		}
		config.merge(file)
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func envFallback(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

// merge fills fields still unset from the YAML file.
func (c *Config) merge(file *FileConfig) {
	if c.Source == "" {
		c.Source = file.Source
	}
	if c.DBPath == "" {
		c.DBPath = file.DB
	}
	if c.CSVPath == "" {
		c.CSVPath = file.CSV
	}
	if c.Rows == 0 {
		c.Rows = file.Rows
	}
	if c.Seed == 0 {
		c.Seed = file.Seed
	}
	if c.LogPath == "" {
		c.LogPath = file.Log
	}
	if c.Timeout == 0 {
		c.Timeout = file.Timeout
	}
	c.Table = file.Table
}

func (c *Config) applyDefaults() {
	if c.Source == "" {
		switch {
		case c.DBPath != "":
			c.Source = SourceSQLite
		case c.CSVPath != "":
			c.Source = SourceCSV
		default:
			c.Source = SourceDemo
		}
	}
	if c.Rows == 0 {
		c.Rows = defaultRows
	}
	if c.Seed == 0 {
		c.Seed = defaultSeed
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.Table.Title == "" {
		c.Table.Title = c.defaultTitle()
	}
}

func (c *Config) defaultTitle() string {
	switch c.Source {
	case SourceSQLite:
		return "SQLite"
	case SourceCSV:
		return "CSV"
	default:
		return "Demo"
	}
}

func (c *Config) validate() error {
	switch c.Source {
	case SourceDemo:
		if c.Rows < 0 {
			return fmt.Errorf("invalid -rows %d: must not be negative", c.Rows)
		}
	case SourceSQLite:
		if c.DBPath == "" {
			return errors.New("sqlite source needs -db or SUBGRID_DB")
		}
		if c.Table.MasterQuery == "" {
			return errors.New("sqlite source needs a master_query in the -config file")
		}
	case SourceCSV:
		if c.CSVPath == "" {
			return errors.New("csv source needs -csv")
		}
	default:
		return fmt.Errorf("unknown source %q (want %s, %s or %s)", c.Source, SourceDemo, SourceSQLite, SourceCSV)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid -timeout %s: must not be negative", c.Timeout)
	}
	return nil
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		value = strings.Trim(value, `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
