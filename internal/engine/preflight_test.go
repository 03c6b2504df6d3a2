package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/dbsmedya/gocompare/internal/config"
	"github.com/dbsmedya/gocompare/internal/types"
)

// ============================================================================
// Test Helpers
// ============================================================================

func preflightSpec() *config.ComparisonSpec {
	return &config.ComparisonSpec{
		SelectedColumnsMain:      []string{"id", "name", "amount"},
		SelectedColumnsSecondary: []string{"id", "fullname", "amount"},
		KeyColumns:               []string{"id"},
	}
}

func preflightDatasets() (*types.Dataset, *types.Dataset) {
	main := types.NewDataset([]string{"id", "name", "amount", "status"})
	secondary := types.NewDataset([]string{"id", "fullname", "amount", "status"})
	return main, secondary
}

func asPreflightError(t *testing.T, err error) *PreflightError {
	t.Helper()
	var perr *PreflightError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected PreflightError, got %T: %v", err, err)
	}
	return perr
}

// ============================================================================
// NewPreflightChecker Tests
// ============================================================================

func TestNewPreflightChecker_Success(t *testing.T) {
	spec := preflightSpec()

	checker, err := NewPreflightChecker(spec, nil)
	if err != nil {
		t.Fatalf("NewPreflightChecker failed: %v", err)
	}

	if checker == nil {
		t.Fatal("NewPreflightChecker returned nil")
	}
	if checker.spec != spec {
		t.Error("Spec mismatch")
	}
	if checker.logger == nil {
		t.Error("Expected default logger to be set")
	}
}

func TestNewPreflightChecker_NilSpec(t *testing.T) {
	_, err := NewPreflightChecker(nil, nil)
	if err == nil {
		t.Error("Expected error for nil spec")
	}
}

// ============================================================================
// RunAllChecks Tests
// ============================================================================

func TestRunAllChecks_Pass(t *testing.T) {
	checker, _ := NewPreflightChecker(preflightSpec(), nil)
	main, secondary := preflightDatasets()

	if err := checker.RunAllChecks(main, secondary); err != nil {
		t.Errorf("RunAllChecks failed: %v", err)
	}
}

func TestRunAllChecks_MissingMainColumn(t *testing.T) {
	checker, _ := NewPreflightChecker(preflightSpec(), nil)
	main := types.NewDataset([]string{"id", "amount"})
	_, secondary := preflightDatasets()

	err := checker.RunAllChecks(main, secondary)
	if err == nil {
		t.Fatal("Expected error for missing main column")
	}

	perr := asPreflightError(t, err)
	if perr.Check != "COLUMN_PRESENCE_CHECK" {
		t.Errorf("Expected COLUMN_PRESENCE_CHECK, got %s", perr.Check)
	}
	if !strings.Contains(perr.Message, "main") {
		t.Errorf("Expected message to name the main dataset, got: %s", perr.Message)
	}
	if len(perr.Columns) != 1 || perr.Columns[0] != "name" {
		t.Errorf("Expected missing column [name], got %v", perr.Columns)
	}
}

func TestRunAllChecks_MissingSecondaryColumn(t *testing.T) {
	checker, _ := NewPreflightChecker(preflightSpec(), nil)
	main, _ := preflightDatasets()
	secondary := types.NewDataset([]string{"id", "amount"})

	err := checker.RunAllChecks(main, secondary)
	if err == nil {
		t.Fatal("Expected error for missing secondary column")
	}

	perr := asPreflightError(t, err)
	if !strings.Contains(perr.Message, "secondary") {
		t.Errorf("Expected message to name the secondary dataset, got: %s", perr.Message)
	}
}

// ============================================================================
// ValidateShape Tests
// ============================================================================

func TestValidateShape_EmptySelection(t *testing.T) {
	spec := preflightSpec()
	spec.SelectedColumnsMain = nil

	checker, _ := NewPreflightChecker(spec, nil)

	err := checker.ValidateShape()
	if err == nil {
		t.Fatal("Expected error for empty selection")
	}

	perr := asPreflightError(t, err)
	if perr.Check != "COLUMN_SELECTION_CHECK" {
		t.Errorf("Expected COLUMN_SELECTION_CHECK, got %s", perr.Check)
	}
}

func TestValidateShape_UnequalCounts(t *testing.T) {
	spec := preflightSpec()
	spec.SelectedColumnsSecondary = []string{"id", "fullname"}

	checker, _ := NewPreflightChecker(spec, nil)

	err := checker.ValidateShape()
	if err == nil {
		t.Fatal("Expected error for unequal selections")
	}

	perr := asPreflightError(t, err)
	if !strings.Contains(perr.Message, "equal counts") {
		t.Errorf("Unexpected message: %s", perr.Message)
	}
	if !strings.Contains(perr.Message, "main=3") || !strings.Contains(perr.Message, "secondary=2") {
		t.Errorf("Expected counts in message, got: %s", perr.Message)
	}
}

// ============================================================================
// ValidateKeyColumns Tests
// ============================================================================

func TestValidateKeyColumns_NoKeys(t *testing.T) {
	spec := preflightSpec()
	spec.KeyColumns = nil

	checker, _ := NewPreflightChecker(spec, nil)

	err := checker.ValidateKeyColumns()
	if err == nil {
		t.Fatal("Expected error for missing key columns")
	}

	perr := asPreflightError(t, err)
	if perr.Check != "KEY_COLUMN_CHECK" {
		t.Errorf("Expected KEY_COLUMN_CHECK, got %s", perr.Check)
	}
}

func TestValidateKeyColumns_NotSelected(t *testing.T) {
	spec := preflightSpec()
	spec.KeyColumns = []string{"id", "ghost"}

	checker, _ := NewPreflightChecker(spec, nil)

	err := checker.ValidateKeyColumns()
	if err == nil {
		t.Fatal("Expected error for unselected key column")
	}

	perr := asPreflightError(t, err)
	if len(perr.Columns) != 1 || perr.Columns[0] != "ghost" {
		t.Errorf("Expected missing key column [ghost], got %v", perr.Columns)
	}
}

// ============================================================================
// PreflightError Tests
// ============================================================================

func TestPreflightError_Format(t *testing.T) {
	err := &PreflightError{
		Check:   "COLUMN_PRESENCE_CHECK",
		Message: "columns not found in main dataset",
		Columns: []string{"name", "amount"},
	}
	got := err.Error()
	if !strings.Contains(got, "COLUMN_PRESENCE_CHECK") || !strings.Contains(got, "name") {
		t.Errorf("Unexpected error string: %s", got)
	}

	bare := &PreflightError{Check: "KEY_COLUMN_CHECK", Message: "at least one key column is required"}
	if strings.Contains(bare.Error(), "columns:") {
		t.Errorf("Expected no column list, got: %s", bare.Error())
	}
}
