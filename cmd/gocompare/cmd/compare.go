package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dbsmedya/gocompare/internal/config"
	"github.com/dbsmedya/gocompare/internal/database"
	"github.com/dbsmedya/gocompare/internal/engine"
	"github.com/dbsmedya/gocompare/internal/logger"
	"github.com/dbsmedya/gocompare/internal/report"
	"github.com/spf13/cobra"
)

var (
	compareName        string
	compareSpecFile    string
	compareOutput      string
	compareSaveSpec    string
	comparePreviewRows int
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two datasets and export a diff report",
	Long: `Compare loads both datasets, applies the configured row filters,
aligns rows by the synthetic key, and classifies every key as Added,
Removed, Modified, or Unchanged.

The comparison follows these steps:
  1. Load main and secondary datasets (file or database table)
  2. Apply per-file row filters
  3. Select and rename columns, build the synthetic key
  4. Diff every unioned key and verify the result
  5. Export the report (XLSX or CSV)

Example:
  gocompare compare --config gocompare.yaml --name monthly_invoices
  gocompare compare --spec invoices.json --output diff.xlsx`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareName, "name", "n", "",
		"Comparison name from configuration file")
	compareCmd.Flags().StringVarP(&compareSpecFile, "spec", "s", "",
		"Path to a standalone comparison spec file (JSON or YAML)")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "",
		"Report output path (extension selects the format)")
	compareCmd.Flags().StringVar(&compareSaveSpec, "save-spec", "",
		"Write the effective comparison spec to this path as JSON")
	compareCmd.Flags().IntVar(&comparePreviewRows, "preview-rows", 0,
		"Print the first N report rows to the terminal")

	rootCmd.AddCommand(compareCmd)
}

// resolveComparison loads the configuration and picks the comparison spec,
// either by name from the config file or from a standalone spec file. A
// standalone spec does not require the config file to exist.
func resolveComparison(configFile, name, specFile string) (*config.Config, string, *config.ComparisonSpec, error) {
	if specFile != "" {
		spec, err := config.LoadSpec(specFile)
		if err != nil {
			return nil, "", nil, err
		}

		cfg, err := config.Load(configFile)
		if err != nil {
			if _, statErr := os.Stat(configFile); os.IsNotExist(statErr) {
				cfg = config.DefaultConfig()
			} else {
				return nil, "", nil, fmt.Errorf("failed to load config: %w", err)
			}
		}

		resolved := name
		if resolved == "" {
			base := filepath.Base(specFile)
			resolved = strings.TrimSuffix(base, filepath.Ext(base))
		}
		return cfg, resolved, spec, nil
	}

	if name == "" {
		return nil, "", nil, fmt.Errorf("either --name or --spec is required")
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to load config: %w", err)
	}

	spec, err := cfg.GetComparison(name)
	if err != nil {
		return nil, "", nil, err
	}
	return cfg, name, spec, nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, name, spec, err := resolveComparison(configFile, compareName, compareSpecFile)
	if err != nil {
		return err
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.SkipVerify)

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infow("Starting comparison",
		"comparison", name,
		"config", configFile,
	)

	// Setup context with signal handling
	ctx := database.SetupSignalHandlerWithCallback(func(sig os.Signal) {
		log.Warnw("Received shutdown signal - aborting comparison", "signal", sig.String())
	})

	// Database manager is only needed when a side reads from a table
	var dbManager *database.Manager
	if spec.UsesDatabase() {
		dbManager = database.NewManager(&cfg.Database)
		if err := dbManager.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbManager.Close()

		if err := dbManager.Ping(ctx); err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
	}

	// Create orchestrator
	orch, err := engine.NewOrchestrator(cfg, name, spec, dbManager)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	orch.SetLogger(log)

	// Initialize (load, filter, preflight)
	if err := orch.Initialize(ctx); err != nil {
		return fmt.Errorf("orchestrator initialization failed: %w", err)
	}

	// Execute comparison
	result, err := orch.Execute(ctx)
	if err != nil {
		if err == context.Canceled {
			log.Warn("Comparison cancelled by user")
			return nil
		}
		return fmt.Errorf("comparison failed: %w", err)
	}

	// Persist the effective spec if requested
	if compareSaveSpec != "" {
		if err := spec.Save(compareSaveSpec); err != nil {
			return err
		}
		log.Infow("Saved comparison spec", "path", compareSaveSpec)
	}

	// Display results
	fmt.Printf("\n=== Comparison Complete ===\n")
	fmt.Printf("Comparison: %s\n", result.Name)
	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Duration: %s\n", result.Duration)
	fmt.Printf("Main rows: %d (after filters: %d)\n",
		result.Stats.MainRows, result.Stats.FilteredMainRows)
	fmt.Printf("Secondary rows: %d (after filters: %d)\n",
		result.Stats.SecondaryRows, result.Stats.FilteredSecondaryRows)
	if result.DroppedMain > 0 || result.DroppedSecondary > 0 {
		fmt.Printf("Dropped duplicate keys: main=%d secondary=%d\n",
			result.DroppedMain, result.DroppedSecondary)
	}
	fmt.Println()
	fmt.Print(report.RenderSummary(result.Summary, !overrides.NoColor))

	if comparePreviewRows > 0 {
		fmt.Println()
		fmt.Print(report.RenderPreview(result.Report, comparePreviewRows, !overrides.NoColor))
	}

	// Export the report
	writer := report.NewWriter(spec.GetExport(cfg.Export))
	path, err := writer.Write(name, result.Report, result.Summary, compareOutput)
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	fmt.Printf("\nReport written: %s\n", path)

	if result.Verification != nil {
		fmt.Printf("✅ Verification passed (method=%s)\n", result.Verification.Method)
	}

	return nil
}
