package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for morph
type Config struct {
	Format  FormatConfig  `yaml:"format"`
	CSV     CSVConfig     `yaml:"csv"`
	Extract ExtractConfig `yaml:"extract"`
	Dev     DevConfig     `yaml:"dev"`
}

// FormatConfig controls pretty-printing
type FormatConfig struct {
	// IndentWidth is the number of spaces per nesting level, typically 2 or 4.
	IndentWidth int `yaml:"indent_width"`
}

// CSVConfig controls CSV conversion
type CSVConfig struct {
	// NormalizeHeaders converts CSV header names to snake_case JSON keys.
	NormalizeHeaders bool `yaml:"normalize_headers"`
}

// ExtractConfig toggles individual extraction strategies
type ExtractConfig struct {
	Curl       bool `yaml:"curl"`
	Base64     bool `yaml:"base64"`
	URLDecode  bool `yaml:"url_decode"`
	CodeFences bool `yaml:"code_fences"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: FormatConfig{
			IndentWidth: 2,
		},
		CSV: CSVConfig{
			NormalizeHeaders: false,
		},
		Extract: ExtractConfig{
			Curl:       true,
			Base64:     true,
			URLDecode:  true,
			CodeFences: true,
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

// Validate checks configuration values for sanity
func (c *Config) Validate() error {
	if c.Format.IndentWidth < 1 || c.Format.IndentWidth > 8 {
		return fmt.Errorf("indent_width must be between 1 and 8, got %d", c.Format.IndentWidth)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".morph.yml", ".morph.yaml", "morph.yml", "morph.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
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

// HeaderKey returns the JSON key for a CSV header, applying naming rules
func (c *Config) HeaderKey(header string) string {
	if c.CSV.NormalizeHeaders {
		return strcase.ToSnake(header)
	}
	return header
}

// LoadConfigWithCLI loads config with CLI argument precedence: an explicit
// config path wins over a discovered file, and a non-zero indent flag wins
// over the file's value.
func LoadConfigWithCLI(configPath string, cliIndent int) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliIndent > 0 {
		cfg.Format.IndentWidth = cliIndent
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
