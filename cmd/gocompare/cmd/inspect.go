package cmd

import (
	"context"

	"github.com/dbsmedya/gocompare/internal/config"
	"github.com/dbsmedya/gocompare/internal/source"
	"github.com/spf13/cobra"
)

var (
	inspectFile      string
	inspectSheet     string
	inspectDelimiter string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect a data file: sheets, columns, and row count",
	Long: `Inspect reads a data file and reports what a comparison would see:
the sheet names of a workbook, the column headers, and the row count.

Useful for writing a comparison spec against an unfamiliar file.

Example:
  gocompare inspect --file invoices.xlsx
  gocompare inspect --file invoices.xlsx --sheet Current
  gocompare inspect --file invoices.tsv --delimiter "\t"`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFile, "file", "f", "",
		"Path to the data file (required)")
	inspectCmd.MarkFlagRequired("file")

	inspectCmd.Flags().StringVar(&inspectSheet, "sheet", "",
		"Sheet name for workbook files (default: first sheet)")
	inspectCmd.Flags().StringVar(&inspectDelimiter, "delimiter", ",",
		"Field delimiter for delimited text files")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cmd.Printf("=== File Inspection ===\n")
	cmd.Printf("File: %s\n", inspectFile)

	if source.IsWorkbook(inspectFile) {
		sheets, err := source.Sheets(inspectFile)
		if err != nil {
			return err
		}
		cmd.Printf("Sheets: %d\n", len(sheets))
		for i, name := range sheets {
			marker := " "
			if name == inspectSheet || (inspectSheet == "" && i == 0) {
				marker = "*"
			}
			cmd.Printf("  %s %s\n", marker, name)
		}
	}

	// A minimal spec drives the loader selection for a single file.
	spec := &config.ComparisonSpec{
		MainFileName: inspectFile,
		MainSheet:    inspectSheet,
		Delimiter:    inspectDelimiter,
	}

	loader, err := source.ForMain(spec, nil)
	if err != nil {
		return err
	}

	ds, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Source: %s\n", loader.Describe())
	cmd.Printf("Columns: %d\n", len(ds.Columns))
	for i, col := range ds.Columns {
		cmd.Printf("  %d. %s\n", i+1, col)
	}
	cmd.Printf("Rows: %d\n", len(ds.Rows))

	return nil
}
