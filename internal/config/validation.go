package config

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// validOperators is the closed operator set for row filters.
var validOperators = map[string]bool{
	"==": true, "!=": true, ">": true, ">=": true, "<": true, "<=": true,
	"contains": true, "not-contains": true,
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	// Validate database when configured or when any comparison needs it
	if c.Database.Configured() || c.anyComparisonUsesTables() {
		if err := c.validateDatabase(); err != nil {
			errors = append(errors, err...)
		}
	}

	// Validate every named comparison
	for _, name := range c.ListComparisons() {
		spec := c.Comparisons[name]
		prefix := fmt.Sprintf("comparisons.%s", name)
		if err := spec.validate(prefix); err != nil {
			errors = append(errors, err...)
		}
	}

	// Validate verification settings
	if err := c.validateVerification(); err != nil {
		errors = append(errors, err...)
	}

	// Validate export settings
	if err := c.validateExport(); err != nil {
		errors = append(errors, err...)
	}

	// Validate logging settings
	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) anyComparisonUsesTables() bool {
	for _, spec := range c.Comparisons {
		if spec.MainTable != "" || spec.SecondaryTable != "" {
			return true
		}
	}
	return false
}

func (c *Config) validateDatabase() ValidationErrors {
	var errors ValidationErrors

	if c.Database.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "database.host",
			Message: "host is required when table sources are used",
		})
	}

	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "database.port",
			Message: "port must be between 1 and 65535",
		})
	}

	if c.Database.User == "" {
		errors = append(errors, ValidationError{
			Field:   "database.user",
			Message: "user is required when table sources are used",
		})
	}

	if c.Database.Database == "" {
		errors = append(errors, ValidationError{
			Field:   "database.database",
			Message: "database name is required when table sources are used",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[c.Database.TLS] {
		errors = append(errors, ValidationError{
			Field:   "database.tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if c.Database.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "database.max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if c.Database.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "database.max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

// Validate checks the comparison spec shape: sources resolvable, column
// selections well-formed, key columns present, mapping one-to-one. These
// checks run before any data is loaded; a failing spec never reaches the
// comparison engine.
func (s *ComparisonSpec) Validate() error {
	if errors := s.validate(""); len(errors) > 0 {
		return errors
	}
	return nil
}

func (s *ComparisonSpec) validate(prefix string) ValidationErrors {
	var errors ValidationErrors

	field := func(name string) string {
		if prefix == "" {
			return name
		}
		return prefix + "." + name
	}

	// Main source
	switch {
	case s.MainFileName == "" && s.MainTable == "":
		errors = append(errors, ValidationError{
			Field:   field("main_file_name"),
			Message: "a main source is required (main_file_name or main_table)",
		})
	case s.MainFileName != "" && s.MainTable != "":
		errors = append(errors, ValidationError{
			Field:   field("main_table"),
			Message: "main_file_name and main_table are mutually exclusive",
		})
	}

	// Secondary source
	hasSecondaryFile := s.SecondaryFileName != "" || s.SecondarySheet != ""
	switch {
	case !hasSecondaryFile && s.SecondaryTable == "":
		errors = append(errors, ValidationError{
			Field:   field("secondary_sheet"),
			Message: "a secondary source is required (secondary_file_name, secondary_sheet, or secondary_table)",
		})
	case hasSecondaryFile && s.SecondaryTable != "":
		errors = append(errors, ValidationError{
			Field:   field("secondary_table"),
			Message: "file and table secondary sources are mutually exclusive",
		})
	}

	// Column selections: non-empty and pairwise matched
	if len(s.SelectedColumnsMain) == 0 {
		errors = append(errors, ValidationError{
			Field:   field("selected_columns_main"),
			Message: "at least one main column must be selected",
		})
	}
	if len(s.SelectedColumnsSecondary) == 0 {
		errors = append(errors, ValidationError{
			Field:   field("selected_columns_secondary"),
			Message: "at least one secondary column must be selected",
		})
	}
	if len(s.SelectedColumnsMain) > 0 && len(s.SelectedColumnsSecondary) > 0 &&
		len(s.SelectedColumnsMain) != len(s.SelectedColumnsSecondary) {
		errors = append(errors, ValidationError{
			Field:   field("selected_columns_secondary"),
			Message: fmt.Sprintf("column selections must have equal counts (main=%d, secondary=%d)",
				len(s.SelectedColumnsMain), len(s.SelectedColumnsSecondary)),
		})
	}

	// Key columns: at least one, all selected on the main side
	if len(s.KeyColumns) == 0 {
		errors = append(errors, ValidationError{
			Field:   field("key_columns"),
			Message: "at least one key column must be selected",
		})
	}
	mainSelected := stringSet(s.SelectedColumnsMain)
	for _, key := range s.KeyColumns {
		if !mainSelected[key] {
			errors = append(errors, ValidationError{
				Field:   field("key_columns"),
				Message: fmt.Sprintf("key column %q is not among the selected main columns", key),
			})
		}
	}

	// Column mapping: secondary -> main, one-to-one, covering every
	// secondary column that does not already share a main column name
	secondarySelected := stringSet(s.SelectedColumnsSecondary)
	seenTargets := make(map[string]string)
	for from, to := range s.ColumnMapping {
		if !secondarySelected[from] {
			errors = append(errors, ValidationError{
				Field:   field("column_mapping"),
				Message: fmt.Sprintf("mapped column %q is not among the selected secondary columns", from),
			})
		}
		if !mainSelected[to] {
			errors = append(errors, ValidationError{
				Field:   field("column_mapping"),
				Message: fmt.Sprintf("mapping target %q is not among the selected main columns", to),
			})
		}
		if prev, dup := seenTargets[to]; dup {
			errors = append(errors, ValidationError{
				Field:   field("column_mapping"),
				Message: fmt.Sprintf("columns %q and %q both map to %q", prev, from, to),
			})
		}
		seenTargets[to] = from
	}
	for _, col := range s.SelectedColumnsSecondary {
		if _, mapped := s.ColumnMapping[col]; !mapped && !mainSelected[col] {
			errors = append(errors, ValidationError{
				Field:   field("column_mapping"),
				Message: fmt.Sprintf("secondary column %q has no mapping and no matching main column", col),
			})
		}
	}

	// Filters
	errors = append(errors, validateFilters(field("main_filters"), s.MainFilters)...)
	errors = append(errors, validateFilters(field("secondary_filters"), s.SecondaryFilters)...)

	// Delimiter must be a single character when set
	if s.Delimiter != "" && utf8.RuneCountInString(s.Delimiter) != 1 {
		errors = append(errors, ValidationError{
			Field:   field("delimiter"),
			Message: "delimiter must be a single character",
		})
	}

	return errors
}

func validateFilters(prefix string, filters []Filter) ValidationErrors {
	var errors ValidationErrors

	for i, f := range filters {
		fieldPrefix := fmt.Sprintf("%s[%d]", prefix, i)

		if f.Column == "" {
			errors = append(errors, ValidationError{
				Field:   fieldPrefix + ".column",
				Message: "column is required",
			})
		}

		if !validOperators[f.Operator] {
			errors = append(errors, ValidationError{
				Field:   fieldPrefix + ".operator",
				Message: fmt.Sprintf("operator %q is not supported", f.Operator),
			})
		}

		if f.UseRegex {
			if _, err := regexp.Compile(f.Value); err != nil {
				errors = append(errors, ValidationError{
					Field:   fieldPrefix + ".value",
					Message: fmt.Sprintf("invalid regular expression: %v", err),
				})
			}
		}
	}

	return errors
}

func (c *Config) validateVerification() ValidationErrors {
	var errors ValidationErrors

	validMethods := map[string]bool{"count": true, "checksum": true, "": true}
	if !validMethods[c.Verification.Method] {
		errors = append(errors, ValidationError{
			Field:   "verification.method",
			Message: "method must be 'count' or 'checksum'",
		})
	}

	return errors
}

func (c *Config) validateExport() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"xlsx": true, "csv": true, "": true}
	if !validFormats[c.Export.Format] {
		errors = append(errors, ValidationError{
			Field:   "export.format",
			Message: "format must be 'xlsx' or 'csv'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}

func stringSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
