package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/dbsmedya/gocompare/internal/compare"
	"github.com/dbsmedya/gocompare/internal/config"
	"github.com/dbsmedya/gocompare/internal/logger"
)

// EstimateResult holds dry-run estimation results.
type EstimateResult struct {
	Name              string
	MainSource        string
	SecondarySource   string
	MainRows          int
	SecondaryRows     int
	FilteredMain      int
	FilteredSecondary int
	DroppedMain       int
	DroppedSecondary  int
	UnionKeys         int
	UnionColumns      []string
	Spec              *config.ComparisonSpec
	Verification      config.VerificationConfig
	Export            config.ExportConfig
}

// Estimator prepares a comparison without executing the diff, for dry-run
// mode.
type Estimator struct {
	orch   *Orchestrator
	logger *logger.Logger
}

// NewEstimator creates a new estimator on top of an orchestrator.
func NewEstimator(orch *Orchestrator, log *logger.Logger) *Estimator {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Estimator{
		orch:   orch,
		logger: log,
	}
}

// Estimate loads, filters, and aligns both datasets and reports what a real
// run would compare. The diff itself never executes.
func (e *Estimator) Estimate(ctx context.Context) (*EstimateResult, error) {
	if err := e.orch.Initialize(ctx); err != nil {
		return nil, err
	}

	stats := e.orch.Stats()
	spec := e.orch.GetSpec()
	cfg := e.orch.GetConfig()

	alignment := compare.Align(e.orch.main, e.orch.secondary, spec.KeyColumns, spec.CaseSensitiveCompare)

	e.logger.Infow("Dry-run alignment complete",
		"comparison", e.orch.GetName(),
		"union_keys", len(alignment.UnionKeys),
		"dropped_main", alignment.DroppedMain,
		"dropped_secondary", alignment.DroppedSecondary)

	return &EstimateResult{
		Name:              e.orch.GetName(),
		MainSource:        e.orch.MainSource(),
		SecondarySource:   e.orch.SecondarySource(),
		MainRows:          stats.MainRows,
		SecondaryRows:     stats.SecondaryRows,
		FilteredMain:      stats.FilteredMainRows,
		FilteredSecondary: stats.FilteredSecondaryRows,
		DroppedMain:       alignment.DroppedMain,
		DroppedSecondary:  alignment.DroppedSecondary,
		UnionKeys:         len(alignment.UnionKeys),
		UnionColumns:      alignment.UnionColumns,
		Spec:              spec,
		Verification:      e.orch.GetVerificationConfig(),
		Export:            spec.GetExport(cfg.Export),
	}, nil
}

// DisplayExecutionPlan prints the dry-run execution plan.
func (e *Estimator) DisplayExecutionPlan(result *EstimateResult) {
	fmt.Printf("\n=== Dry-Run Execution Plan ===\n\n")

	fmt.Printf("Comparison: %s\n\n", result.Name)

	fmt.Printf("Main dataset: %s\n", result.MainSource)
	fmt.Printf("  Rows loaded: %d\n", result.MainRows)
	fmt.Printf("  Rows after %d filter(s): %d\n\n", len(result.Spec.MainFilters), result.FilteredMain)

	fmt.Printf("Secondary dataset: %s\n", result.SecondarySource)
	fmt.Printf("  Rows loaded: %d\n", result.SecondaryRows)
	fmt.Printf("  Rows after %d filter(s): %d\n\n", len(result.Spec.SecondaryFilters), result.FilteredSecondary)

	fmt.Printf("Comparison Plan:\n")
	fmt.Printf("  Selected columns (%d): %s\n", len(result.UnionColumns),
		strings.Join(result.UnionColumns, ", "))
	fmt.Printf("  Key columns: %s\n", strings.Join(result.Spec.KeyColumns, ", "))
	if len(result.Spec.ColumnMapping) > 0 {
		fmt.Printf("  Mapped columns: %d\n", len(result.Spec.ColumnMapping))
	}
	fmt.Printf("  Case sensitive compare: %v\n", result.Spec.CaseSensitiveCompare)
	fmt.Printf("  Union keys: %d\n", result.UnionKeys)
	if result.DroppedMain > 0 || result.DroppedSecondary > 0 {
		fmt.Printf("  Dropped duplicate keys: main=%d secondary=%d\n",
			result.DroppedMain, result.DroppedSecondary)
	}
	fmt.Printf("  Report shape: %d row(s) x %d column(s)\n",
		result.UnionKeys, 2+2*len(result.UnionColumns))
	fmt.Println()

	// Config summary (show comparison-specific or global)
	fmt.Printf("Configuration Summary:\n")
	fmt.Printf("  Verification method: %s", result.Verification.Method)
	if result.Spec.Verification != nil && result.Spec.Verification.Method != "" {
		fmt.Print(" (comparison-specific)")
	}
	fmt.Println()
	fmt.Printf("  Skip verification: %v", result.Verification.SkipVerification)
	if result.Spec.Verification != nil {
		fmt.Print(" (comparison-specific)")
	}
	fmt.Println()
	fmt.Printf("  Export format: %s", result.Export.Format)
	if result.Spec.Export != nil && result.Spec.Export.Format != "" {
		fmt.Print(" (comparison-specific)")
	}
	fmt.Println()
	fmt.Printf("  Export directory: %s\n", result.Export.Directory)

	fmt.Println("\n=== End of Dry-Run ===")
	fmt.Println("\nℹ️  No report was produced. Use 'compare' command to execute.")
}
