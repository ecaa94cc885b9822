// Package config provides configuration management for gpxsep.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Miitto/gpx-separator/internal/logging"
)

// Config holds the gpxsep configuration.
type Config struct {
	OutputDir    string `yaml:"output_dir,omitempty"`
	Force        bool   `yaml:"force,omitempty"`
	Verify       bool   `yaml:"verify,omitempty"`
	Workers      int    `yaml:"workers,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"`
}

// Environment variables read by LoadFromEnv.
const (
	EnvOutputDir = "GPXSEP_OUTPUT_DIR"
	EnvForce     = "GPXSEP_FORCE"
	EnvVerify    = "GPXSEP_VERIFY"
	EnvWorkers   = "GPXSEP_WORKERS"
	EnvLogLevel  = "GPXSEP_LOG_LEVEL"
)

// EnvVars lists every environment variable gpxsep reads.
func EnvVars() []string {
	return []string{EnvOutputDir, EnvForce, EnvVerify, EnvWorkers, EnvLogLevel}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.OutputFormat {
	case "", "table", "json", "plain":
	default:
		return fmt.Errorf("invalid output_format %q", c.OutputFormat)
	}

	return nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty;
// boolean and integer values that fail to parse are ignored.
func (c *Config) LoadFromEnv() {
	if dir := os.Getenv(EnvOutputDir); dir != "" {
		c.OutputDir = dir
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvForce)); err == nil {
		c.Force = v
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvVerify)); err == nil {
		c.Verify = v
	}
	if v, err := strconv.Atoi(os.Getenv(EnvWorkers)); err == nil {
		c.Workers = v
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = strings.ToLower(level)
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gpxsep", "config.yml")
	}

	// Fall back to ~/.config/gpxsep/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".gpxsep", "config.yml")
	}

	return filepath.Join(home, ".config", "gpxsep", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file yields an empty config; a file that exists but cannot be parsed is an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
