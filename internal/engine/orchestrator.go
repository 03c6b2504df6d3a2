// Package engine provides the core comparison orchestration logic for GoCompare.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dbsmedya/gocompare/internal/compare"
	"github.com/dbsmedya/gocompare/internal/config"
	"github.com/dbsmedya/gocompare/internal/database"
	"github.com/dbsmedya/gocompare/internal/filter"
	"github.com/dbsmedya/gocompare/internal/logger"
	"github.com/dbsmedya/gocompare/internal/source"
	"github.com/dbsmedya/gocompare/internal/types"
	"github.com/dbsmedya/gocompare/internal/verifier"
)

// Orchestrator coordinates one comparison run: it loads both datasets,
// applies the row filters, projects and renames the selected columns, and
// executes the keyed diff. The orchestrator must be initialized with
// Initialize() before use.
type Orchestrator struct {
	config          *config.Config
	spec            *config.ComparisonSpec
	name            string
	dbManager       *database.Manager
	logger          *logger.Logger
	verificationCfg config.VerificationConfig
	initialized     bool

	mainSource      string
	secondarySource string
	main            *types.Dataset
	secondary       *types.Dataset
	stats           LoadStats
}

// NewOrchestrator creates a new comparison orchestrator. The database
// manager may be nil when neither side reads from a table.
func NewOrchestrator(cfg *config.Config, name string, spec *config.ComparisonSpec, dbManager *database.Manager) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if spec == nil {
		return nil, fmt.Errorf("comparison spec is nil")
	}
	if spec.UsesDatabase() && dbManager == nil {
		return nil, fmt.Errorf("database manager is nil but the spec reads from a table")
	}

	// Use default logger if none provided
	log := logger.NewDefault()

	return &Orchestrator{
		config:          cfg,
		spec:            spec,
		name:            name,
		dbManager:       dbManager,
		logger:          log,
		verificationCfg: spec.GetVerification(cfg.Verification),
	}, nil
}

// SetLogger sets a custom logger for the orchestrator.
func (o *Orchestrator) SetLogger(log *logger.Logger) {
	if log != nil {
		o.logger = log
	}
}

// Initialize validates the spec, loads both datasets, runs the preflight
// checks, applies the row filters, and projects both sides onto the shared
// column name space. This method must be called before Execute().
func (o *Orchestrator) Initialize(ctx context.Context) error {
	if o.initialized {
		return nil
	}
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}

	if err := o.spec.Validate(); err != nil {
		return fmt.Errorf("invalid comparison spec: %w", err)
	}

	mainLoader, err := source.ForMain(o.spec, o.dbManager)
	if err != nil {
		return err
	}
	secondaryLoader, err := source.ForSecondary(o.spec, o.dbManager)
	if err != nil {
		return err
	}
	o.mainSource = mainLoader.Describe()
	o.secondarySource = secondaryLoader.Describe()

	o.logger.Infow("Initializing comparison",
		"comparison", o.name,
		"main", o.mainSource,
		"secondary", o.secondarySource,
	)

	main, err := mainLoader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load main dataset: %w", err)
	}
	secondary, err := secondaryLoader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load secondary dataset: %w", err)
	}
	o.stats.MainRows = main.NumRows()
	o.stats.SecondaryRows = secondary.NumRows()

	checker, err := NewPreflightChecker(o.spec, o.logger)
	if err != nil {
		return err
	}
	if err := checker.RunAllChecks(main, secondary); err != nil {
		return err
	}

	// Filters run against the full datasets so they may reference columns
	// outside the selection.
	main, err = filter.Apply(main, o.spec.MainFilters)
	if err != nil {
		return fmt.Errorf("failed to filter main dataset: %w", err)
	}
	secondary, err = filter.Apply(secondary, o.spec.SecondaryFilters)
	if err != nil {
		return fmt.Errorf("failed to filter secondary dataset: %w", err)
	}
	o.stats.FilteredMainRows = main.NumRows()
	o.stats.FilteredSecondaryRows = secondary.NumRows()

	main, err = main.Select(o.spec.SelectedColumnsMain)
	if err != nil {
		return fmt.Errorf("failed to select main columns: %w", err)
	}
	secondary, err = secondary.Select(o.spec.SelectedColumnsSecondary)
	if err != nil {
		return fmt.Errorf("failed to select secondary columns: %w", err)
	}

	// After renaming, both sides share the main column name space.
	o.main = main
	o.secondary = secondary.Rename(o.spec.ColumnMapping)
	o.initialized = true

	o.logger.Infow("Comparison initialized successfully",
		"main_rows", o.stats.FilteredMainRows,
		"secondary_rows", o.stats.FilteredSecondaryRows,
		"columns", len(o.main.Columns),
	)

	return nil
}

// Execute runs the comparison. It aligns both datasets by synthetic key,
// diffs every unioned key, summarizes the report, and verifies the result
// unless verification is skipped.
func (o *Orchestrator) Execute(ctx context.Context) (*Result, error) {
	if !o.initialized {
		return nil, fmt.Errorf("orchestrator not initialized")
	}
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	result := &Result{
		RunID:           uuid.NewString(),
		Name:            o.name,
		StartedAt:       time.Now(),
		MainSource:      o.mainSource,
		SecondarySource: o.secondarySource,
		Stats:           o.stats,
	}

	runLog := o.logger.WithRun(result.RunID).WithComparison(o.name)
	runLog.Infow("Starting comparison execution",
		"key_columns", o.spec.KeyColumns,
		"case_sensitive", o.spec.CaseSensitiveCompare,
		"verification_method", o.verificationCfg.Method,
		"skip_verification", o.verificationCfg.SkipVerification,
	)

	alignment := compare.Align(o.main, o.secondary, o.spec.KeyColumns, o.spec.CaseSensitiveCompare)
	if alignment.DroppedMain > 0 || alignment.DroppedSecondary > 0 {
		runLog.Warnw("Dropped rows with duplicate keys",
			"main", alignment.DroppedMain,
			"secondary", alignment.DroppedSecondary,
		)
	}
	result.DroppedMain = alignment.DroppedMain
	result.DroppedSecondary = alignment.DroppedSecondary
	result.UnionColumns = alignment.UnionColumns

	report := compare.Diff(alignment, o.spec.CaseSensitiveCompare)
	result.Report = report
	result.Summary = compare.Summarize(report)

	if !o.verificationCfg.SkipVerification {
		v, err := verifier.NewVerifier(verifier.Method(o.verificationCfg.Method), runLog)
		if err != nil {
			return nil, fmt.Errorf("failed to create verifier: %w", err)
		}
		verifyResult, err := v.Verify(alignment, report, o.spec.CaseSensitiveCompare)
		if err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		result.Verification = verifyResult
	}

	result.Success = true
	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)

	runLog.Infow("Comparison execution completed",
		"duration", result.Duration,
		"total", result.Summary.Total,
		"added", result.Summary.Added,
		"removed", result.Summary.Removed,
		"modified", result.Summary.Modified,
		"unchanged", result.Summary.Unchanged,
	)

	return result, nil
}

// IsInitialized returns true if the orchestrator has been initialized.
func (o *Orchestrator) IsInitialized() bool {
	return o.initialized
}

// Stats returns the row counts observed while preparing the datasets.
// Meaningful only after Initialize().
func (o *Orchestrator) Stats() LoadStats {
	return o.stats
}

// MainSource names the main dataset source. Meaningful only after Initialize().
func (o *Orchestrator) MainSource() string {
	return o.mainSource
}

// SecondarySource names the secondary dataset source. Meaningful only after
// Initialize().
func (o *Orchestrator) SecondarySource() string {
	return o.secondarySource
}

// GetSpec returns the comparison spec.
func (o *Orchestrator) GetSpec() *config.ComparisonSpec {
	return o.spec
}

// GetConfig returns the global configuration.
func (o *Orchestrator) GetConfig() *config.Config {
	return o.config
}

// GetName returns the comparison name.
func (o *Orchestrator) GetName() string {
	return o.name
}

// GetVerificationConfig returns the effective verification configuration.
func (o *Orchestrator) GetVerificationConfig() config.VerificationConfig {
	return o.verificationCfg
}

// UpdateVerificationConfig updates the effective verification configuration.
// This should be called after applying CLI overrides.
func (o *Orchestrator) UpdateVerificationConfig(cfg config.VerificationConfig) {
	o.verificationCfg = cfg
}
