// Package report renders and exports diff reports produced by the compare
// pipeline.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dbsmedya/gocompare/internal/compare"
	"github.com/dbsmedya/gocompare/internal/config"
	"github.com/dbsmedya/gocompare/internal/types"
)

const (
	// FormatXLSX exports the report as an Excel workbook.
	FormatXLSX = "xlsx"
	// FormatCSV exports the report as a comma-separated file.
	FormatCSV = "csv"

	reportSheet  = "Report"
	summarySheet = "Summary"
)

// Writer exports diff reports to disk in the configured format.
type Writer struct {
	config config.ExportConfig
}

// NewWriter creates a Writer from export settings.
func NewWriter(cfg config.ExportConfig) *Writer {
	return &Writer{config: cfg}
}

// Header returns the flat column layout of an exported report: the synthetic
// key, an old/new column pair per report column, and the change type.
func Header(columns []string) []string {
	header := make([]string, 0, 2*len(columns)+2)
	header = append(header, "Key")
	for _, column := range columns {
		header = append(header, column+"_old", column+"_new")
	}
	header = append(header, "ChangeType")
	return header
}

// Record flattens one diff row into the export layout. Null cells become
// empty fields; present values keep their canonical text form.
func Record(row compare.DiffRow, columns []string) []string {
	record := make([]string, 0, 2*len(columns)+2)
	record = append(record, row.Key)
	for _, column := range columns {
		pair := row.Cell(column)
		record = append(record, exportCell(pair.Old), exportCell(pair.New))
	}
	record = append(record, string(row.Change))
	return record
}

// Write exports a report. An explicit outputPath wins and implies its format
// by extension; otherwise the file lands in the configured directory as
// <name>_<timestamp>.<format>. The written path is returned.
func (w *Writer) Write(name string, report *compare.Report, summary compare.Summary, outputPath string) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report is required")
	}

	path, format, err := w.resolve(name, outputPath)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	switch format {
	case FormatCSV:
		err = w.writeCSV(path, report)
	case FormatXLSX:
		err = w.writeXLSX(path, report, summary)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// resolve picks the target path and format for the export.
func (w *Writer) resolve(name, outputPath string) (string, string, error) {
	if outputPath != "" {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(outputPath)), ".")
		if ext == "" {
			return "", "", fmt.Errorf("output path %q has no file extension", outputPath)
		}
		return outputPath, ext, nil
	}

	format := w.config.Format
	if format == "" {
		format = FormatXLSX
	}
	if name == "" {
		name = "comparison"
	}

	filename := fmt.Sprintf("%s_%s.%s", name, time.Now().Format("20060102_150405"), format)
	return filepath.Join(w.config.Directory, filename), format, nil
}

func (w *Writer) writeCSV(path string, report *compare.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Header(report.Columns)); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range report.Rows {
		if err := cw.Write(Record(row, report.Columns)); err != nil {
			return fmt.Errorf("failed to write report row %q: %w", row.Key, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush report file: %w", err)
	}
	return nil
}

func (w *Writer) writeXLSX(path string, report *compare.Report, summary compare.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), reportSheet)

	if err := writeSheetRow(f, reportSheet, 1, Header(report.Columns)); err != nil {
		return err
	}
	for i, row := range report.Rows {
		if err := writeSheetRow(f, reportSheet, i+2, Record(row, report.Columns)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summaryRows := [][]string{
		{"ChangeType", "Count"},
		{string(compare.Added), fmt.Sprintf("%d", summary.Added)},
		{string(compare.Removed), fmt.Sprintf("%d", summary.Removed)},
		{string(compare.Modified), fmt.Sprintf("%d", summary.Modified)},
		{string(compare.Unchanged), fmt.Sprintf("%d", summary.Unchanged)},
		{"Total", fmt.Sprintf("%d", summary.Total)},
	}
	for i, row := range summaryRows {
		if err := writeSheetRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report file: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, rowIndex int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowIndex, err)
	}

	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowIndex, err)
	}
	return nil
}

// exportCell renders a value for file export. Nulls export as empty cells.
func exportCell(v types.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.String()
}
