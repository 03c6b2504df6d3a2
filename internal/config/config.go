// Package config provides configuration structures and loading for GoCompare.
package config

// Config represents the complete application configuration.
type Config struct {
	Database     DatabaseConfig            `yaml:"database" mapstructure:"database"`
	Comparisons  map[string]ComparisonSpec `yaml:"comparisons" mapstructure:"comparisons"`
	Verification VerificationConfig        `yaml:"verification" mapstructure:"verification"`
	Export       ExportConfig              `yaml:"export" mapstructure:"export"`
	Logging      LoggingConfig             `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig represents a MySQL database connection configuration.
// It is only required when a comparison reads from database tables.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// Configured reports whether a database connection has been configured.
func (dc *DatabaseConfig) Configured() bool {
	return dc.Host != ""
}

// VerificationConfig represents report verification settings.
type VerificationConfig struct {
	Method           string `yaml:"method" mapstructure:"method"` // "count" or "checksum"
	SkipVerification bool   `yaml:"skip_verification" mapstructure:"skip_verification"`
}

// ExportConfig represents report export settings.
type ExportConfig struct {
	Format    string `yaml:"format" mapstructure:"format"` // "xlsx" or "csv"
	Directory string `yaml:"directory" mapstructure:"directory"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     10,
			MaxIdleConnections: 5,
		},
		Verification: VerificationConfig{
			Method:           "count",
			SkipVerification: false,
		},
		Export: ExportConfig{
			Format:    "xlsx",
			Directory: "reports",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// GetComparisonVerification returns the verification config for a comparison
// by name, falling back to global if not set.
func (c *Config) GetComparisonVerification(name string) VerificationConfig {
	spec, err := c.GetComparison(name)
	if err != nil {
		return c.Verification
	}
	return spec.GetVerification(c.Verification)
}

// GetVerification returns the comparison's verification config, falling back
// to the global one for unset fields.
func (s *ComparisonSpec) GetVerification(global VerificationConfig) VerificationConfig {
	if s.Verification == nil {
		return global
	}

	result := global
	if s.Verification.Method != "" {
		result.Method = s.Verification.Method
	}
	result.SkipVerification = s.Verification.SkipVerification || global.SkipVerification
	return result
}

// GetExport returns the comparison's export config, falling back to the
// global one for unset fields.
func (s *ComparisonSpec) GetExport(global ExportConfig) ExportConfig {
	if s.Export == nil {
		return global
	}

	result := global
	if s.Export.Format != "" {
		result.Format = s.Export.Format
	}
	if s.Export.Directory != "" {
		result.Directory = s.Export.Directory
	}
	return result
}
