package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSpecSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	specPath := filepath.Join(tmpDir, "stock.json")

	spec := validSpec()
	spec.MainFilters = []Filter{
		{Column: "amount", Operator: ">", Value: "100"},
	}
	spec.CaseSensitiveCompare = true

	if err := spec.Save(specPath); err != nil {
		t.Fatalf("failed to save spec: %v", err)
	}

	// The document is indented JSON with the snake_case field names
	raw, err := os.ReadFile(specPath)
	if err != nil {
		t.Fatalf("failed to read saved spec: %v", err)
	}
	content := string(raw)
	if !strings.Contains(content, `  "main_file_name": "data/current.xlsx"`) {
		t.Errorf("expected indented main_file_name field, got:\n%s", content)
	}
	if !strings.Contains(content, `"case_sensitive_compare": true`) {
		t.Errorf("expected case_sensitive_compare field, got:\n%s", content)
	}
	if strings.Contains(content, "secondary_file_name") {
		t.Error("empty secondary_file_name should be omitted")
	}

	loaded, err := LoadSpec(specPath)
	if err != nil {
		t.Fatalf("failed to load spec: %v", err)
	}

	if loaded.MainFileName != spec.MainFileName {
		t.Errorf("expected main file %q, got %q", spec.MainFileName, loaded.MainFileName)
	}
	if loaded.SecondarySheet != "StockPrev" {
		t.Errorf("expected secondary sheet 'StockPrev', got %q", loaded.SecondarySheet)
	}
	if len(loaded.MainFilters) != 1 || loaded.MainFilters[0].Value != "100" {
		t.Errorf("expected the saved filter back, got %+v", loaded.MainFilters)
	}
	if !loaded.CaseSensitiveCompare {
		t.Error("expected case_sensitive_compare to survive the round trip")
	}
	if loaded.ColumnMapping["Name"] != "name" {
		t.Errorf("expected mapping Name->name, got %q", loaded.ColumnMapping["Name"])
	}
	// Defaults applied on load
	if loaded.Delimiter != "," {
		t.Errorf("expected default delimiter after load, got %q", loaded.Delimiter)
	}
}

func TestLoadSpecValidates(t *testing.T) {
	tmpDir := t.TempDir()
	specPath := filepath.Join(tmpDir, "broken.json")

	// Key column not among selected main columns
	content := `{
  "main_file_name": "data.csv",
  "secondary_file_name": "old.csv",
  "selected_columns_main": ["id"],
  "selected_columns_secondary": ["id"],
  "key_columns": ["sku"]
}`
	if err := os.WriteFile(specPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write spec: %v", err)
	}

	_, err := LoadSpec(specPath)
	if err == nil {
		t.Fatal("expected validation error from LoadSpec")
	}
	if !strings.Contains(err.Error(), `"sku"`) {
		t.Errorf("expected key column error, got: %v", err)
	}
}

func TestLoadSpecFromYAML(t *testing.T) {
	tmpDir := t.TempDir()
	specPath := filepath.Join(tmpDir, "stock.yaml")

	content := `
main_file_name: data.csv
secondary_file_name: old.csv
selected_columns_main: [id, name]
selected_columns_secondary: [id, name]
key_columns: [id]
`
	if err := os.WriteFile(specPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write spec: %v", err)
	}

	spec, err := LoadSpec(specPath)
	if err != nil {
		t.Fatalf("failed to load yaml spec: %v", err)
	}
	if spec.MainFileName != "data.csv" {
		t.Errorf("expected main file 'data.csv', got %q", spec.MainFileName)
	}
	if len(spec.KeyColumns) != 1 || spec.KeyColumns[0] != "id" {
		t.Errorf("expected key columns [id], got %v", spec.KeyColumns)
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	_, err := LoadSpec("/nonexistent/spec.json")
	if err == nil {
		t.Error("expected error for missing spec file")
	}
}
