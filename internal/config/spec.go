package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Filter is one row predicate: (column, operator, value, flags).
// The value is always raw text; evaluation parses it as a number when the
// whole trimmed text is numeric. CaseSensitive and UseRegex only apply to
// the contains operators.
type Filter struct {
	Column        string `json:"column" yaml:"column" mapstructure:"column"`
	Operator      string `json:"operator" yaml:"operator" mapstructure:"operator"`
	Value         string `json:"value" yaml:"value" mapstructure:"value"`
	CaseSensitive bool   `json:"case_sensitive" yaml:"case_sensitive" mapstructure:"case_sensitive"`
	UseRegex      bool   `json:"use_regex" yaml:"use_regex" mapstructure:"use_regex"`
}

// ComparisonSpec is the persistable description of one comparison: where the
// two datasets come from, how they are filtered, which columns take part,
// and how rows are keyed. It round-trips as an indented JSON document and
// also embeds under comparisons.<name> in the application config.
type ComparisonSpec struct {
	MainFileName      string `json:"main_file_name" yaml:"main_file_name" mapstructure:"main_file_name"`
	MainSheet         string `json:"main_sheet" yaml:"main_sheet" mapstructure:"main_sheet"`
	SecondaryFileName string `json:"secondary_file_name,omitempty" yaml:"secondary_file_name" mapstructure:"secondary_file_name"`
	SecondarySheet    string `json:"secondary_sheet" yaml:"secondary_sheet" mapstructure:"secondary_sheet"`

	// Delimiter applies to .csv/.tsv/.txt inputs. Empty means comma.
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter" mapstructure:"delimiter"`

	// Table sources read from the configured database instead of files.
	MainTable      string `json:"main_table,omitempty" yaml:"main_table" mapstructure:"main_table"`
	SecondaryTable string `json:"secondary_table,omitempty" yaml:"secondary_table" mapstructure:"secondary_table"`

	MainFilters      []Filter `json:"main_filters" yaml:"main_filters" mapstructure:"main_filters"`
	SecondaryFilters []Filter `json:"secondary_filters" yaml:"secondary_filters" mapstructure:"secondary_filters"`

	SelectedColumnsMain      []string `json:"selected_columns_main" yaml:"selected_columns_main" mapstructure:"selected_columns_main"`
	SelectedColumnsSecondary []string `json:"selected_columns_secondary" yaml:"selected_columns_secondary" mapstructure:"selected_columns_secondary"`

	// ColumnMapping renames secondary columns into the main column
	// namespace before alignment (secondary name -> main name).
	ColumnMapping map[string]string `json:"column_mapping" yaml:"column_mapping" mapstructure:"column_mapping"`

	KeyColumns           []string `json:"key_columns" yaml:"key_columns" mapstructure:"key_columns"`
	CaseSensitiveCompare bool     `json:"case_sensitive_compare" yaml:"case_sensitive_compare" mapstructure:"case_sensitive_compare"`

	// Optional per-comparison overrides of the global sections.
	Verification *VerificationConfig `json:"verification,omitempty" yaml:"verification,omitempty" mapstructure:"verification"`
	Export       *ExportConfig       `json:"export,omitempty" yaml:"export,omitempty" mapstructure:"export"`
}

// ApplyDefaults fills unset optional fields with their documented defaults.
func (s *ComparisonSpec) ApplyDefaults() {
	if s.Delimiter == "" {
		s.Delimiter = ","
	}
	if s.MainFilters == nil {
		s.MainFilters = []Filter{}
	}
	if s.SecondaryFilters == nil {
		s.SecondaryFilters = []Filter{}
	}
	if s.ColumnMapping == nil {
		s.ColumnMapping = map[string]string{}
	}
}

// SecondarySource returns the file the secondary dataset is read from.
// An empty secondary_file_name means the secondary sheet of the main
// workbook (the one-workbook mode).
func (s *ComparisonSpec) SecondarySource() string {
	if s.SecondaryFileName != "" {
		return s.SecondaryFileName
	}
	return s.MainFileName
}

// UsesDatabase reports whether either side reads from a database table.
func (s *ComparisonSpec) UsesDatabase() bool {
	return s.MainTable != "" || s.SecondaryTable != ""
}

// Save writes the spec as an indented JSON document.
func (s *ComparisonSpec) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal comparison spec: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write comparison spec: %w", err)
	}
	return nil
}

// LoadSpec reads a standalone comparison spec document (JSON or YAML by
// extension), applies defaults, and validates it.
func LoadSpec(path string) (*ComparisonSpec, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == ".json" {
		v.SetConfigType("json")
	} else {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read comparison spec: %w", err)
	}

	spec := &ComparisonSpec{}
	if err := v.Unmarshal(spec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comparison spec: %w", err)
	}

	spec.ApplyDefaults()

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}
