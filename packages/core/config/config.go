package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the shapematch configuration
type Config struct {
	IDField         string   `json:"idField,omitempty" yaml:"idField,omitempty"`
	VersionField    string   `json:"versionField,omitempty" yaml:"versionField,omitempty"`
	TimestampFields []string `json:"timestampFields,omitempty" yaml:"timestampFields,omitempty"`
	Sentinel        string   `json:"sentinel,omitempty" yaml:"sentinel,omitempty"`   // Matches any present value
	IDPattern       string   `json:"idPattern,omitempty" yaml:"idPattern,omitempty"` // Syntax a generated identifier must satisfy
	Strict          *bool    `json:"strict,omitempty" yaml:"strict,omitempty"`
	NoColor         *bool    `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetStrict returns the strict setting, defaulting to false
func (c *Config) GetStrict() bool {
	return getBool(c.Strict, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// IsTimestampField reports whether field holds a creation or update timestamp
func (c *Config) IsTimestampField(field string) bool {
	for _, f := range c.TimestampFields {
		if f == field {
			return true
		}
	}
	return false
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".shapematch.json",
	"shapematch.json",
	".shapematch.yaml",
	".shapematch.yml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	loaded := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, loaded)
	default:
		err = json.Unmarshal(data, loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	config := DefaultConfig().Merge(loaded)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.IDField != "" {
		result.IDField = other.IDField
	}
	if other.VersionField != "" {
		result.VersionField = other.VersionField
	}
	if len(other.TimestampFields) > 0 {
		result.TimestampFields = append([]string(nil), other.TimestampFields...)
	}
	if other.Sentinel != "" {
		result.Sentinel = other.Sentinel
	}
	if other.IDPattern != "" {
		result.IDPattern = other.IDPattern
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Strict != nil {
		result.Strict = other.Strict
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// Validate checks that the configuration can drive a matcher
func (c *Config) Validate() error {
	var errs []error
	if c.IDField == "" {
		errs = append(errs, errors.New("idField must not be empty"))
	}
	if c.Sentinel == "" {
		errs = append(errs, errors.New("sentinel must not be empty"))
	}
	if _, err := regexp.Compile(c.IDPattern); err != nil {
		errs = append(errs, fmt.Errorf("idPattern: %w", err))
	}
	return errors.Join(errs...)
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
