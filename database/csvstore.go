package database

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Tables is the global table store instance.
var Tables *Store

// Store reads and rewrites the CSV tables under one data directory.
type Store struct {
	dir string
}

// InitStore ensures the data directory exists and returns a store over it.
func InitStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create data directory")
	}
	Tables = &Store{dir: dir}
	return Tables, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

// path builds the file path of the named table.
func (s *Store) path(table string) string {
	return filepath.Join(s.dir, table+".csv")
}

// ReadTable loads every data row of the named table, skipping the header
// row. A missing table reads as empty.
func (s *Store) ReadTable(table string) ([][]string, error) {
	f, err := os.Open(s.path(table))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to open table %s", table)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read table %s", table)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// WriteTable rewrites the named table in full. Rows go to a temporary file
// in the same directory which is renamed over the live table, so a failed
// write never truncates existing data.
func (s *Store) WriteTable(table string, header []string, rows [][]string) error {
	tmp := s.path(table) + "." + uuid.NewString() + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file for table %s", table)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "failed to write header for table %s", table)
	}
	if err := writer.WriteAll(rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "failed to write rows for table %s", table)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "failed to sync table %s", table)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "failed to close table %s", table)
	}
	if err := os.Rename(tmp, s.path(table)); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "failed to replace table %s", table)
	}
	return nil
}
