package cmd

import (
	"os"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile    string
	logLevel   string
	logFormat  string
	skipVerify bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "gocompare",
	Short: "Tabular Dataset Comparison & Diff Reporting",
	Long: `A CLI tool for comparing two tabular datasets (CSV, Excel, or MySQL
tables) row by row and reporting what was added, removed, or modified.

Features:
  - CSV, TSV, and Excel workbook inputs, plus MySQL table sources
  - Per-file row filters applied before comparison
  - Column selection, renaming, and synthetic multi-column keys
  - Result verification (count and SHA256 checksum)
  - XLSX and CSV report export`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.Disable()
		}
		loadDotenv()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gocompare.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Safety overrides
	rootCmd.PersistentFlags().BoolVar(&skipVerify, "skip-verify", false,
		"Skip result verification after comparison")

	// Output control
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored terminal output")
}

// loadDotenv loads a .env file next to the config file when one exists.
// Variables already set in the environment win over .env values.
func loadDotenv() {
	path := filepath.Join(filepath.Dir(cfgFile), ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel   string
	LogFormat  string
	SkipVerify bool
	NoColor    bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		SkipVerify: skipVerify,
		NoColor:    noColor,
	}
}
