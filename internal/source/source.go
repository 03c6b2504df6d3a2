// Package source loads datasets from spreadsheet files, delimited text
// files, and database tables.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dbsmedya/gocompare/internal/config"
	"github.com/dbsmedya/gocompare/internal/database"
	"github.com/dbsmedya/gocompare/internal/types"
)

// Loader produces the dataset for one side of a comparison.
type Loader interface {
	// Load reads the full dataset into memory.
	Load(ctx context.Context) (*types.Dataset, error)
	// Describe names the source for logs and plan output.
	Describe() string
}

// LoadError reports a dataset that could not be read or parsed. When either
// side fails to load, the comparison never starts.
type LoadError struct {
	Source string
	Sheet  string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("failed to load %s (sheet %q): %v", e.Source, e.Sheet, e.Err)
	}
	return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ForMain returns the loader for the main side of a comparison spec.
func ForMain(spec *config.ComparisonSpec, db *database.Manager) (Loader, error) {
	if spec.MainTable != "" {
		return NewTableLoader(db, spec.MainTable), nil
	}
	return forFile(spec.MainFileName, spec.MainSheet, spec.Delimiter)
}

// ForSecondary returns the loader for the secondary side. An empty secondary
// file name falls back to the main file, so two sheets of one workbook can
// be compared.
func ForSecondary(spec *config.ComparisonSpec, db *database.Manager) (Loader, error) {
	if spec.SecondaryTable != "" {
		return NewTableLoader(db, spec.SecondaryTable), nil
	}
	return forFile(spec.SecondarySource(), spec.SecondarySheet, spec.Delimiter)
}

// IsWorkbook reports whether the path names an Excel workbook by extension.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return true
	}
	return false
}

func forFile(path, sheet, delimiter string) (Loader, error) {
	if IsWorkbook(path) {
		return NewExcelLoader(path, sheet), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return NewCSVLoader(path, delimiter), nil
	default:
		return nil, &LoadError{
			Source: path,
			Err:    fmt.Errorf("unsupported file format %q", filepath.Ext(path)),
		}
	}
}

// parseCell converts one raw cell: empty text is null, fully numeric text
// is a number, anything else is trimmed text.
func parseCell(raw string) types.Value {
	if strings.TrimSpace(raw) == "" {
		return types.NullValue()
	}
	return types.ParseValue(raw)
}

// fromRecords builds a dataset from raw records. The first record is the
// header; data records shorter than the header pad with nulls and cells
// beyond the header are dropped.
func fromRecords(records [][]string) *types.Dataset {
	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	ds := types.NewDataset(header)
	for _, record := range records[1:] {
		row := make(types.Row, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = parseCell(record[i])
			} else {
				row[column] = types.NullValue()
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}
