package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"subgrid/internal/source"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML table definition file.
//
//	source: sqlite
//	db: ncr.db
//	table:
//	  title: NCR log
//	  master_query: SELECT id, part, status, closed FROM ncr ORDER BY id
//	  detail_query: SELECT ncr_id, line_no, disposition FROM ncr_lines ORDER BY ncr_id, line_no
//	  checkbox: [closed]
//	  derived:
//	    - {label: Lines, kind: count}
type FileConfig struct {
	Source  string           `yaml:"source"`
	DB      string           `yaml:"db"`
	CSV     string           `yaml:"csv"`
	Rows    int              `yaml:"rows"`
	Seed    int64            `yaml:"seed"`
	Log     string           `yaml:"log"`
	Timeout time.Duration    `yaml:"timeout"`
	Table   source.TableSpec `yaml:"table"`
}

// LoadFileConfig reads a YAML table definition. Relative db and csv paths are
// resolved against the file's directory.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	file, err := DecodeFileConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	file.DB = resolvePath(dir, file.DB)
	file.CSV = resolvePath(dir, file.CSV)
	return file, nil
}

// DecodeFileConfig decodes a YAML table definition. Unknown keys are errors.
func DecodeFileConfig(r io.Reader) (*FileConfig, error) {
	file := &FileConfig{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(file); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	for i, d := range file.Table.Derived {
		if _, err := d.Deriver(); err != nil {
			return nil, fmt.Errorf("derived column %d: %w", i+1, err)
		}
	}
	return file, nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
