package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "bdecode_config_*.yml")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	_ = tmpFile.Close()
	return tmpFile.Name()
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.False(t, cfg.Decode.Strict)
	assert.Equal(t, 512, cfg.Decode.MaxDepth)
	assert.Equal(t, "", cfg.Output.Indent)
	assert.Equal(t, KeyOrderSorted, cfg.Output.KeyOrder)
	assert.Equal(t, KeyCaseOriginal, cfg.Output.KeyCase)
	assert.Equal(t, BytesAuto, cfg.Output.Bytes)
	assert.False(t, cfg.Dev.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := writeTempConfig(t, `
decode:
  strict: true
  max_depth: 64
output:
  indent: "  "
  key_order: input
  key_case: snake
  bytes: base64
dev:
  debug: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Decode.Strict)
	assert.Equal(t, 64, cfg.Decode.MaxDepth)
	assert.Equal(t, "  ", cfg.Output.Indent)
	assert.Equal(t, KeyOrderInput, cfg.Output.KeyOrder)
	assert.Equal(t, KeyCaseSnake, cfg.Output.KeyCase)
	assert.Equal(t, BytesBase64, cfg.Output.Bytes)
	assert.True(t, cfg.Dev.Debug)
}

func TestConfig_PartialYAMLKeepsDefaults(t *testing.T) {
	path := writeTempConfig(t, "output:\n  key_order: input\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, KeyOrderInput, cfg.Output.KeyOrder)
	assert.Equal(t, BytesAuto, cfg.Output.Bytes)
	assert.Equal(t, 512, cfg.Decode.MaxDepth)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "output:\n  key_order: [unclosed array\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad key order", func(c *Config) { c.Output.KeyOrder = "random" }, "invalid key_order"},
		{"bad key case", func(c *Config) { c.Output.KeyCase = "upper" }, "invalid key_case"},
		{"bad bytes", func(c *Config) { c.Output.Bytes = "base32" }, "invalid bytes encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_NegativeMaxDepthDisablesLimit(t *testing.T) {
	path := writeTempConfig(t, "decode:\n  max_depth: -1\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.Decode.MaxDepth)
}

func TestConfig_LoadRejectsInvalidValues(t *testing.T) {
	path := writeTempConfig(t, "output:\n  bytes: octal\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid bytes encoding")
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_search_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	configPath := filepath.Join(tmpDir, "project", ".bdecode.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("output:\n  key_order: input\n"), 0o644))

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(nestedDir))

	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), "key_order: input")
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "no_config_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(tmpDir))

	assert.Empty(t, FindConfigFile())
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	path := writeTempConfig(t, `
decode:
  strict: false
output:
  key_order: input
  bytes: hex
`)

	cfg, err := LoadConfigWithCLI(path, Overrides{KeyOrder: KeyOrderSorted, Strict: true, Indent: "\t"})
	require.NoError(t, err)

	assert.Equal(t, KeyOrderSorted, cfg.Output.KeyOrder) // From CLI
	assert.True(t, cfg.Decode.Strict)                    // From CLI
	assert.Equal(t, "\t", cfg.Output.Indent)             // From CLI
	assert.Equal(t, BytesHex, cfg.Output.Bytes)          // From config file
	assert.Equal(t, KeyCaseOriginal, cfg.Output.KeyCase) // Default value
}

func TestLoadConfigWithPrecedence_NoFile(t *testing.T) {
	cfg, err := LoadConfigWithCLI("", Overrides{KeyCase: KeyCaseCamel, Debug: true})
	require.NoError(t, err)

	assert.Equal(t, KeyCaseCamel, cfg.Output.KeyCase)
	assert.True(t, cfg.Dev.Debug)
	assert.Equal(t, KeyOrderSorted, cfg.Output.KeyOrder)
}

func TestLoadConfigWithCLI_InvalidOverride(t *testing.T) {
	_, err := LoadConfigWithCLI("", Overrides{KeyOrder: "reverse"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key_order")
}
