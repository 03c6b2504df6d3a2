package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dbsmedya/gocompare/internal/types"
)

// ExcelLoader reads one sheet of a spreadsheet file into a dataset.
type ExcelLoader struct {
	path  string
	sheet string
}

// NewExcelLoader creates a loader for one sheet of a spreadsheet file.
// An empty sheet name means the first sheet of the workbook.
func NewExcelLoader(path, sheet string) *ExcelLoader {
	return &ExcelLoader{path: path, sheet: sheet}
}

// Describe names the source file and sheet.
func (l *ExcelLoader) Describe() string {
	if l.sheet != "" {
		return fmt.Sprintf("file %s, sheet %s", l.path, l.sheet)
	}
	return fmt.Sprintf("file %s", l.path)
}

// Load reads the whole sheet. The first row is the header; ragged rows are
// tolerated per fromRecords.
func (l *ExcelLoader) Load(ctx context.Context) (*types.Dataset, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, &LoadError{Source: l.path, Sheet: l.sheet, Err: err}
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &LoadError{Source: l.path, Sheet: sheet, Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Source: l.path, Sheet: sheet, Err: fmt.Errorf("sheet has no header row")}
	}

	return fromRecords(rows), nil
}

// Sheets lists the sheet names of a spreadsheet file in workbook order.
func Sheets(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	return f.GetSheetList(), nil
}
