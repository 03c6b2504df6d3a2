// Package engine provides preflight input checks for GoCompare.
package engine

import (
	"fmt"

	"github.com/dbsmedya/gocompare/internal/config"
	"github.com/dbsmedya/gocompare/internal/logger"
	"github.com/dbsmedya/gocompare/internal/types"
)

// PreflightError represents a preflight check failure. Preflight failures
// surface before any row is compared; no partial computation happens.
type PreflightError struct {
	Check   string
	Message string
	Columns []string
}

func (e *PreflightError) Error() string {
	if len(e.Columns) > 0 {
		return fmt.Sprintf("%s: %s (columns: %v)", e.Check, e.Message, e.Columns)
	}
	return fmt.Sprintf("%s: %s", e.Check, e.Message)
}

// PreflightChecker validates the loaded datasets against the comparison spec
// before filtering and alignment.
type PreflightChecker struct {
	spec   *config.ComparisonSpec
	logger *logger.Logger
}

// NewPreflightChecker creates a new preflight checker.
func NewPreflightChecker(spec *config.ComparisonSpec, log *logger.Logger) (*PreflightChecker, error) {
	if spec == nil {
		return nil, fmt.Errorf("comparison spec is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	return &PreflightChecker{
		spec:   spec,
		logger: log,
	}, nil
}

// RunAllChecks runs all preflight checks against the loaded datasets.
func (p *PreflightChecker) RunAllChecks(main, secondary *types.Dataset) error {
	p.logger.Info("Running preflight checks...")

	if err := p.ValidateShape(); err != nil {
		return err
	}

	if err := p.ValidateSelectedColumns("main", main, p.spec.SelectedColumnsMain); err != nil {
		return err
	}

	if err := p.ValidateSelectedColumns("secondary", secondary, p.spec.SelectedColumnsSecondary); err != nil {
		return err
	}

	if err := p.ValidateKeyColumns(); err != nil {
		return err
	}

	p.logger.Info("All preflight checks PASSED")
	return nil
}

// ValidateShape checks that the column selections line up: both sides
// non-empty and of equal length.
func (p *PreflightChecker) ValidateShape() error {
	mainCount := len(p.spec.SelectedColumnsMain)
	secondaryCount := len(p.spec.SelectedColumnsSecondary)

	if mainCount == 0 || secondaryCount == 0 {
		return &PreflightError{
			Check:   "COLUMN_SELECTION_CHECK",
			Message: "both datasets need at least one selected column",
		}
	}

	if mainCount != secondaryCount {
		return &PreflightError{
			Check: "COLUMN_SELECTION_CHECK",
			Message: fmt.Sprintf("column selections must have equal counts (main=%d, secondary=%d)",
				mainCount, secondaryCount),
		}
	}

	p.logger.Debugf("Column selection check PASSED (%d columns per side)", mainCount)
	return nil
}

// ValidateSelectedColumns checks that every selected column exists in the
// loaded dataset.
func (p *PreflightChecker) ValidateSelectedColumns(side string, ds *types.Dataset, selected []string) error {
	var missing []string
	for _, column := range selected {
		if !ds.HasColumn(column) {
			missing = append(missing, column)
		}
	}

	if len(missing) > 0 {
		return &PreflightError{
			Check:   "COLUMN_PRESENCE_CHECK",
			Message: fmt.Sprintf("columns not found in %s dataset", side),
			Columns: missing,
		}
	}

	p.logger.Debugf("Column presence check PASSED for %s dataset (%d columns)", side, len(selected))
	return nil
}

// ValidateKeyColumns checks that at least one key column is selected and
// that every key column is part of the main selection.
func (p *PreflightChecker) ValidateKeyColumns() error {
	if len(p.spec.KeyColumns) == 0 {
		return &PreflightError{
			Check:   "KEY_COLUMN_CHECK",
			Message: "at least one key column is required",
		}
	}

	selected := make(map[string]bool, len(p.spec.SelectedColumnsMain))
	for _, column := range p.spec.SelectedColumnsMain {
		selected[column] = true
	}

	var missing []string
	for _, column := range p.spec.KeyColumns {
		if !selected[column] {
			missing = append(missing, column)
		}
	}

	if len(missing) > 0 {
		return &PreflightError{
			Check:   "KEY_COLUMN_CHECK",
			Message: "key columns must be part of the main column selection",
			Columns: missing,
		}
	}

	p.logger.Debugf("Key column check PASSED (%d key columns)", len(p.spec.KeyColumns))
	return nil
}

// SetLogger sets a custom logger for the preflight checker.
func (p *PreflightChecker) SetLogger(log *logger.Logger) {
	p.logger = log
}
