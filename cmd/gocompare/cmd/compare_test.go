package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestCompareCommandStructure(t *testing.T) {
	assert.NotNil(t, compareCmd)
	assert.Equal(t, "compare", compareCmd.Use)
	assert.NotEmpty(t, compareCmd.Short)
	assert.NotEmpty(t, compareCmd.Long)
	assert.NotNil(t, compareCmd.RunE)
}

func TestCompareCommandFlags(t *testing.T) {
	flags := compareCmd.Flags()

	// Check name flag
	nameFlag := flags.Lookup("name")
	assert.NotNil(t, nameFlag)
	assert.Equal(t, "n", nameFlag.Shorthand)
	assert.Equal(t, "", nameFlag.DefValue)

	// Check spec flag
	specFlag := flags.Lookup("spec")
	assert.NotNil(t, specFlag)
	assert.Equal(t, "s", specFlag.Shorthand)
	assert.Equal(t, "", specFlag.DefValue)

	// Check output flag
	outputFlag := flags.Lookup("output")
	assert.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.Equal(t, "", outputFlag.DefValue)

	// Check save-spec flag
	saveSpecFlag := flags.Lookup("save-spec")
	assert.NotNil(t, saveSpecFlag)
	assert.Equal(t, "", saveSpecFlag.DefValue)

	// Check preview-rows flag
	previewRowsFlag := flags.Lookup("preview-rows")
	assert.NotNil(t, previewRowsFlag)
	assert.Equal(t, "0", previewRowsFlag.DefValue)
}

func TestCompareIsAddedToRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "compare" {
			found = true
			break
		}
	}
	assert.True(t, found, "compare command should be added to root command")
}

func TestCompareCommandExample(t *testing.T) {
	// Verify the command has example usage documentation
	assert.Contains(t, compareCmd.Long, "Example:")
	assert.Contains(t, compareCmd.Long, "gocompare compare")
}

func TestCompareCommandStepsDocumentation(t *testing.T) {
	// Verify the command documents the comparison process steps
	doc := compareCmd.Long
	assert.Contains(t, doc, "Load")
	assert.Contains(t, doc, "filters")
	assert.Contains(t, doc, "Diff")
	assert.Contains(t, doc, "Export")
}

func TestResolveComparison(t *testing.T) {
	tmpDir := t.TempDir()

	configFile := createTempTestConfig(t, map[string]interface{}{
		"comparisons": map[string]interface{}{
			"people": map[string]interface{}{
				"main_file_name":             "current.csv",
				"secondary_file_name":        "previous.csv",
				"selected_columns_main":      []string{"id", "name"},
				"selected_columns_secondary": []string{"id", "name"},
				"key_columns":                []string{"id"},
			},
		},
	})

	specFile := filepath.Join(tmpDir, "people.json")
	specContent := `{
  "main_file_name": "current.csv",
  "secondary_file_name": "previous.csv",
  "selected_columns_main": ["id", "name"],
  "selected_columns_secondary": ["id", "name"],
  "key_columns": ["id"]
}`
	err := os.WriteFile(specFile, []byte(specContent), 0644)
	assert.NoError(t, err)

	t.Run("name from config", func(t *testing.T) {
		cfg, name, spec, err := resolveComparison(configFile, "people", "")
		assert.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Equal(t, "people", name)
		assert.Equal(t, "current.csv", spec.MainFileName)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, _, _, err := resolveComparison(configFile, "ghost", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("neither name nor spec", func(t *testing.T) {
		_, _, _, err := resolveComparison(configFile, "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "either --name or --spec is required")
	})

	t.Run("spec file without config file", func(t *testing.T) {
		cfg, name, spec, err := resolveComparison(
			filepath.Join(tmpDir, "missing.yaml"), "", specFile)
		assert.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Equal(t, "people", name, "name should come from the spec file base")
		assert.Equal(t, "previous.csv", spec.SecondaryFileName)
	})

	t.Run("spec file with explicit name", func(t *testing.T) {
		_, name, _, err := resolveComparison(
			filepath.Join(tmpDir, "missing.yaml"), "renamed", specFile)
		assert.NoError(t, err)
		assert.Equal(t, "renamed", name)
	})
}

// ============================================================================
// CLI Execution Tests
// ============================================================================

// TestCompareCmd_Execute_MissingNameAndSpec tests execution without --name or --spec
func TestCompareCmd_Execute_MissingNameAndSpec(t *testing.T) {
	origCfgFile := cfgFile
	defer func() {
		cfgFile = origCfgFile
		rootCmd.SetArgs(nil)
	}()

	rootCmd.SetArgs([]string{"compare"})
	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "either --name or --spec is required")
}

// TestCompareCmd_Execute_InvalidName tests execution with a non-existent comparison name
func TestCompareCmd_Execute_InvalidName(t *testing.T) {
	origCfgFile := cfgFile
	origCompareName := compareName
	defer func() {
		cfgFile = origCfgFile
		compareName = origCompareName
		rootCmd.SetArgs(nil)
	}()

	configFile := createTempTestConfig(t, map[string]interface{}{
		"comparisons": map[string]interface{}{
			"valid_comparison": map[string]interface{}{
				"main_file_name":             "current.csv",
				"secondary_file_name":        "previous.csv",
				"selected_columns_main":      []string{"id"},
				"selected_columns_secondary": []string{"id"},
				"key_columns":                []string{"id"},
			},
		},
	})

	rootCmd.SetArgs([]string{"compare", "--name", "nonexistent", "--config", configFile})
	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// TestCompareCmd_Execute_MissingConfig tests execution when config file doesn't exist
func TestCompareCmd_Execute_MissingConfig(t *testing.T) {
	origCfgFile := cfgFile
	origCompareName := compareName
	defer func() {
		cfgFile = origCfgFile
		compareName = origCompareName
		rootCmd.SetArgs(nil)
	}()

	rootCmd.SetArgs([]string{"compare", "--name", "people", "--config", "/tmp/nonexistent_gocompare_config.yaml"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}

// TestCompareCmd_Execute_EndToEnd runs a full comparison over CSV fixtures
// and checks the exported report.
func TestCompareCmd_Execute_EndToEnd(t *testing.T) {
	origCfgFile := cfgFile
	origCompareName := compareName
	origCompareOutput := compareOutput
	origNoColor := noColor
	defer func() {
		cfgFile = origCfgFile
		compareName = origCompareName
		compareOutput = origCompareOutput
		noColor = origNoColor
		rootCmd.SetArgs(nil)
	}()

	tmpDir := t.TempDir()

	mainFile := filepath.Join(tmpDir, "current.csv")
	err := os.WriteFile(mainFile, []byte("id,name\n1,Bob\n2,Alice\n"), 0644)
	assert.NoError(t, err)

	secondaryFile := filepath.Join(tmpDir, "previous.csv")
	err = os.WriteFile(secondaryFile, []byte("id,name\n2,alice\n3,Carol\n"), 0644)
	assert.NoError(t, err)

	configFile := createTempTestConfig(t, map[string]interface{}{
		"logging": map[string]interface{}{
			"level": "error",
		},
		"comparisons": map[string]interface{}{
			"people": map[string]interface{}{
				"main_file_name":             mainFile,
				"secondary_file_name":        secondaryFile,
				"selected_columns_main":      []string{"id", "name"},
				"selected_columns_secondary": []string{"id", "name"},
				"key_columns":                []string{"id"},
			},
		},
	})

	outputFile := filepath.Join(tmpDir, "report.csv")

	rootCmd.SetArgs([]string{"compare",
		"--name", "people",
		"--config", configFile,
		"--output", outputFile,
		"--no-color",
	})
	err = rootCmd.Execute()
	assert.NoError(t, err)

	// The report covers the union of keys: 1 added, 2 unchanged, 3 removed
	data, err := os.ReadFile(outputFile)
	assert.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "Key,id_old,id_new,name_old,name_new,ChangeType")
	assert.Contains(t, content, "1,,1,,Bob,Added")
	assert.Contains(t, content, "2,2,2,alice,Alice,Unchanged")
	assert.Contains(t, content, "3,3,,Carol,,Removed")
	assert.Equal(t, 4, strings.Count(content, "\n"), "header plus one line per key")
}

// ============================================================================
// Test Helpers
// ============================================================================

// createTempTestConfig creates a temporary YAML config file for testing
func createTempTestConfig(t *testing.T, data map[string]interface{}) string {
	t.Helper()

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "test_config.yaml")

	yamlData, err := yaml.Marshal(data)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	err = os.WriteFile(configFile, yamlData, 0644)
	if err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	return configFile
}
