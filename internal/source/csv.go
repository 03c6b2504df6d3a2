package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dbsmedya/gocompare/internal/types"
)

// CSVLoader reads a delimited text file into a dataset.
type CSVLoader struct {
	path      string
	delimiter rune
}

// NewCSVLoader creates a loader for a delimited text file. An empty
// delimiter means comma.
func NewCSVLoader(path, delimiter string) *CSVLoader {
	d := ','
	if delimiter != "" {
		d = []rune(delimiter)[0]
	}
	return &CSVLoader{path: path, delimiter: d}
}

// Describe names the source file.
func (l *CSVLoader) Describe() string {
	return fmt.Sprintf("file %s", l.path)
}

// Load reads the whole file. The first record is the header row; ragged
// records are tolerated per fromRecords.
func (l *CSVLoader) Load(ctx context.Context) (*types.Dataset, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, &LoadError{Source: l.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = l.delimiter
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, &LoadError{Source: l.path, Err: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Source: l.path, Err: fmt.Errorf("file has no header row")}
	}

	return fromRecords(records), nil
}
