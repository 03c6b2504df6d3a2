package cmd

import (
	"context"
	"fmt"

	"github.com/dbsmedya/gocompare/internal/database"
	"github.com/dbsmedya/gocompare/internal/engine"
	"github.com/dbsmedya/gocompare/internal/logger"
	"github.com/spf13/cobra"
)

var (
	previewName     string
	previewSpecFile string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Simulate a comparison without producing a report",
	Long: `Preview loads and filters both datasets and reports what a real run
would compare, without executing the diff or writing a report.

The preview shows:
  - Row counts before and after filtering, per dataset
  - Selected columns, key columns, and mapped columns
  - Verification and export configuration in effect

Example:
  gocompare preview --config gocompare.yaml --name monthly_invoices`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewName, "name", "n", "",
		"Comparison name from configuration file")
	previewCmd.Flags().StringVarP(&previewSpecFile, "spec", "s", "",
		"Path to a standalone comparison spec file (JSON or YAML)")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, name, spec, err := resolveComparison(configFile, previewName, previewSpecFile)
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

	// Setup context
	ctx := context.Background()

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

	// Create orchestrator and estimator
	orch, err := engine.NewOrchestrator(cfg, name, spec, dbManager)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	orch.SetLogger(log)

	estimator := engine.NewEstimator(orch, log)

	// Run estimation
	result, err := estimator.Estimate(ctx)
	if err != nil {
		return fmt.Errorf("estimation failed: %w", err)
	}

	// Display execution plan
	estimator.DisplayExecutionPlan(result)

	return nil
}
