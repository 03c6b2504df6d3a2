package cmd

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/gocompare/internal/config"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all comparisons defined in configuration",
	Long: `List displays all comparisons defined in the configuration file
along with their basic settings.

Example:
  gocompare list --config gocompare.yaml`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	names := cfg.ListComparisons()

	if len(names) == 0 {
		cmd.Printf("No comparisons defined in %s\n", configFile)
		return nil
	}

	cmd.Printf("Comparisons defined in %s:\n\n", configFile)

	for i, name := range names {
		spec, err := cfg.GetComparison(name)
		if err != nil {
			return fmt.Errorf("failed to get comparison %q: %w", name, err)
		}

		// Comparison header
		cmd.Printf("%d. %s\n", i+1, name)
		cmd.Printf("   Main:          %s\n", describeSide(spec.MainTable, spec.MainFileName, spec.MainSheet))
		cmd.Printf("   Secondary:     %s\n", describeSide(spec.SecondaryTable, spec.SecondarySource(), spec.SecondarySheet))

		// Filters
		if len(spec.MainFilters)+len(spec.SecondaryFilters) > 0 {
			cmd.Printf("   Filters:       %d main, %d secondary\n",
				len(spec.MainFilters), len(spec.SecondaryFilters))
		} else {
			cmd.Printf("   Filters:       (none)\n")
		}

		// Columns and keys
		cmd.Printf("   Columns:       %d selected\n", len(spec.SelectedColumnsMain))
		if len(spec.ColumnMapping) > 0 {
			cmd.Printf("   Mapped:        %d column(s)\n", len(spec.ColumnMapping))
		}
		cmd.Printf("   Key:           %s\n", strings.Join(spec.KeyColumns, ", "))
		cmd.Printf("   Case sensitive: %v\n", spec.CaseSensitiveCompare)

		// Comparison-specific verification config
		if spec.Verification != nil {
			cmd.Printf("   Verification:  Custom (method=%s, skip=%v)\n",
				spec.Verification.Method, spec.Verification.SkipVerification)
		}

		// Comparison-specific export config
		if spec.Export != nil {
			cmd.Printf("   Export:        Custom (format=%s, directory=%s)\n",
				spec.Export.Format, spec.Export.Directory)
		}

		// Add spacing between comparisons
		if i < len(names)-1 {
			cmd.Println()
		}
	}

	cmd.Printf("\nTotal: %d comparison(s)\n", len(names))
	return nil
}

// describeSide renders one dataset source for the listing. Table sources
// win over files; an empty sheet means the first sheet of a workbook.
func describeSide(table, file, sheet string) string {
	if table != "" {
		return fmt.Sprintf("table %s", table)
	}
	if sheet != "" {
		return fmt.Sprintf("%s (sheet %s)", file, sheet)
	}
	return file
}
