package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Key orders for rendered dictionaries
const (
	KeyOrderInput  = "input"
	KeyOrderSorted = "sorted"
)

// Byte string encodings for rendered output
const (
	BytesAuto   = "auto"
	BytesHex    = "hex"
	BytesBase64 = "base64"
)

// Key cases for rendered dictionary keys
const (
	KeyCaseOriginal   = "original"
	KeyCaseCamel      = "camel"
	KeyCaseLowerCamel = "lower_camel"
	KeyCaseSnake      = "snake"
	KeyCaseKebab      = "kebab"
)

// Config represents the complete configuration for bdecode
type Config struct {
	Decode DecodeConfig `yaml:"decode"`
	Output OutputConfig `yaml:"output"`
	Dev    DevConfig    `yaml:"dev"`
}

// DecodeConfig controls how input is decoded
type DecodeConfig struct {
	Strict bool `yaml:"strict"`
	// MaxDepth limits container nesting; 0 uses the decoder default and a
	// negative value disables the limit.
	MaxDepth int `yaml:"max_depth"`
}

// OutputConfig controls JSON rendering
type OutputConfig struct {
	Indent   string `yaml:"indent"`
	KeyOrder string `yaml:"key_order"`
	KeyCase  string `yaml:"key_case"`
	Bytes    string `yaml:"bytes"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Decode: DecodeConfig{
			Strict:   false,
			MaxDepth: 512,
		},
		Output: OutputConfig{
			Indent:   "",
			KeyOrder: KeyOrderSorted,
			KeyCase:  KeyCaseOriginal,
			Bytes:    BytesAuto,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".bdecode.yml", ".bdecode.yaml", "bdecode.yml", "bdecode.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enumerated options
func (c *Config) Validate() error {
	switch c.Output.KeyOrder {
	case KeyOrderInput, KeyOrderSorted:
	default:
		return fmt.Errorf("invalid key_order %q: must be %q or %q", c.Output.KeyOrder, KeyOrderInput, KeyOrderSorted)
	}

	switch c.Output.KeyCase {
	case KeyCaseOriginal, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseSnake, KeyCaseKebab:
	default:
		return fmt.Errorf("invalid key_case %q", c.Output.KeyCase)
	}

	switch c.Output.Bytes {
	case BytesAuto, BytesHex, BytesBase64:
	default:
		return fmt.Errorf("invalid bytes encoding %q: must be one of auto, hex, base64", c.Output.Bytes)
	}

	return nil
}

// Overrides holds values given on the command line. Empty strings and
// false booleans leave the file value in place.
type Overrides struct {
	Indent   string
	KeyOrder string
	KeyCase  string
	Bytes    string
	Strict   bool
	Debug    bool
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI > config file > defaults
func LoadConfigWithCLI(configPath string, cli Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Indent != "" {
		cfg.Output.Indent = cli.Indent
	}
	if cli.KeyOrder != "" {
		cfg.Output.KeyOrder = cli.KeyOrder
	}
	if cli.KeyCase != "" {
		cfg.Output.KeyCase = cli.KeyCase
	}
	if cli.Bytes != "" {
		cfg.Output.Bytes = cli.Bytes
	}
	if cli.Strict {
		cfg.Decode.Strict = true
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
