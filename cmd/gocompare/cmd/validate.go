package cmd

import (
	"context"
	"fmt"

	"github.com/dbsmedya/gocompare/internal/config"
	"github.com/dbsmedya/gocompare/internal/database"
	"github.com/dbsmedya/gocompare/internal/engine"
	"github.com/dbsmedya/gocompare/internal/logger"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and run preflight checks",
	Long: `Validate checks the configuration file and runs preflight checks
against the actual data sources to ensure safe execution.

Checks performed:
  - Configuration syntax and required fields
  - Data source readability (files open, tables reachable)
  - Selected column presence in both datasets
  - Column selection shape (equal counts, non-empty)
  - Key column membership in the selection

Example:
  gocompare validate --config gocompare.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.SkipVerify)

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Info("Starting validation checks...")

	fmt.Printf("\n=== Configuration Validation ===\n")
	fmt.Printf("Config file: %s\n", configFile)
	fmt.Printf("Comparisons found: %d\n\n", len(cfg.Comparisons))

	// Config-level validation covers every section and spec shape
	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Configuration invalid:\n%v\n", err)
		return fmt.Errorf("validation failed")
	}

	// Setup context
	ctx := context.Background()

	// Connect once when any comparison reads from a table
	var dbManager *database.Manager
	for _, name := range cfg.ListComparisons() {
		spec, _ := cfg.GetComparison(name)
		if spec.UsesDatabase() {
			dbManager = database.NewManager(&cfg.Database)
			if err := dbManager.Connect(ctx); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer dbManager.Close()

			if err := dbManager.Ping(ctx); err != nil {
				return fmt.Errorf("database connection failed: %w", err)
			}
			break
		}
	}

	// Validate each comparison against its actual data sources
	hasErrors := false
	for _, name := range cfg.ListComparisons() {
		spec, err := cfg.GetComparison(name)
		if err != nil {
			return err
		}

		fmt.Printf("--- Comparison: %s ---\n", name)
		fmt.Printf("Main:      %s\n", describeSide(spec.MainTable, spec.MainFileName, spec.MainSheet))
		fmt.Printf("Secondary: %s\n", describeSide(spec.SecondaryTable, spec.SecondarySource(), spec.SecondarySheet))
		fmt.Printf("Key:       %v\n", spec.KeyColumns)

		orch, err := engine.NewOrchestrator(cfg, name, spec, dbManager)
		if err != nil {
			fmt.Printf("❌ Failed to create orchestrator: %v\n\n", err)
			hasErrors = true
			continue
		}
		orch.SetLogger(log)

		if err := orch.Initialize(ctx); err != nil {
			fmt.Printf("❌ Preflight checks failed: %v\n\n", err)
			hasErrors = true
			continue
		}

		stats := orch.Stats()
		fmt.Printf("Rows:      main=%d secondary=%d (after filters: %d/%d)\n",
			stats.MainRows, stats.SecondaryRows,
			stats.FilteredMainRows, stats.FilteredSecondaryRows)
		fmt.Printf("✅ All checks passed\n\n")
	}

	if hasErrors {
		return fmt.Errorf("validation failed for one or more comparisons")
	}

	fmt.Println("=== Validation Complete ===")
	fmt.Println("✅ All comparisons validated successfully")
	return nil
}
