// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values
const (
	EnvPort             = "RESUME_PARSER_PORT"
	EnvDatabaseURL      = "DATABASE_URL"
	EnvMaxUploadBytes   = "RESUME_PARSER_MAX_UPLOAD_BYTES"
	EnvLogLevel         = "RESUME_PARSER_LOG_LEVEL"
	EnvLogFormat        = "RESUME_PARSER_LOG_FORMAT"
	EnvRenderTimeout    = "RESUME_PARSER_RENDER_TIMEOUT"
	EnvBatchConcurrency = "RESUME_PARSER_BATCH_CONCURRENCY"
	EnvChromePath       = "CHROME_PATH"
)

// Defaults
const (
	DefaultPort             = 8080
	DefaultMaxUploadBytes   = 5 << 20
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "pretty"
	DefaultRenderTimeout    = "30s"
	DefaultBatchConcurrency = 4
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults.
type Config struct {
	// Server
	Port           int   `json:"port,omitempty" yaml:"port,omitempty" validate:"min=1,max=65535"`
	MaxUploadBytes int64 `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty" validate:"gt=0"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"oneof=trace debug info warn error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"oneof=json pretty"`
	Verbose   bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed summaries

	// Rendering
	RenderTimeout string `json:"render_timeout,omitempty" yaml:"render_timeout,omitempty"` // Go duration, e.g. "30s"
	ChromePath    string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`       // Chrome/Chromium binary for PDF output

	// Batch
	BatchConcurrency int `json:"batch_concurrency,omitempty" yaml:"batch_concurrency,omitempty" validate:"min=1,max=64"`
}

// Default returns the configuration used when nothing else is provided
func Default() Config {
	return Config{
		Port:             DefaultPort,
		MaxUploadBytes:   DefaultMaxUploadBytes,
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
		RenderTimeout:    DefaultRenderTimeout,
		BatchConcurrency: DefaultBatchConcurrency,
	}
}

// LoadConfig loads configuration from a .json, .yaml or .yml file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Load builds the effective configuration: the optional file, then defaults for anything unset,
// then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(Default())
	if err := merged.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields from environment variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int64) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer: %w", key, err)
		}
		*dst = n
		return nil
	}

	str(EnvDatabaseURL, &c.DatabaseURL)
	str(EnvLogLevel, &c.LogLevel)
	str(EnvLogFormat, &c.LogFormat)
	str(EnvRenderTimeout, &c.RenderTimeout)
	str(EnvChromePath, &c.ChromePath)

	port := int64(c.Port)
	if err := num(EnvPort, &port); err != nil {
		return err
	}
	c.Port = int(port)

	if err := num(EnvMaxUploadBytes, &c.MaxUploadBytes); err != nil {
		return err
	}

	concurrency := int64(c.BatchConcurrency)
	if err := num(EnvBatchConcurrency, &concurrency); err != nil {
		return err
	}
	c.BatchConcurrency = int(concurrency)

	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	return nil
}

// Validate checks that the configuration has valid values.
// Zero values are accepted for fields that MergeWithDefaults fills.
func (c *Config) Validate() error {
	merged := c.MergeWithDefaults(Default())

	if err := validator.New().Struct(merged); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (value %v)", fieldName(fe.Field()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if _, err := merged.RenderTimeoutDuration(); err != nil {
		return err
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// RenderTimeoutDuration parses RenderTimeout, falling back to the default when unset
func (c *Config) RenderTimeoutDuration() (time.Duration, error) {
	value := c.RenderTimeout
	if value == "" {
		value = DefaultRenderTimeout
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config error: 'render_timeout' is not a duration: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config error: 'render_timeout' must be positive")
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.RenderTimeout == "" {
		result.RenderTimeout = defaults.RenderTimeout
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = defaults.BatchConcurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// fieldName maps struct field names to their config keys
func fieldName(field string) string {
	switch field {
	case "Port":
		return "port"
	case "MaxUploadBytes":
		return "max_upload_bytes"
	case "LogLevel":
		return "log_level"
	case "LogFormat":
		return "log_format"
	case "BatchConcurrency":
		return "batch_concurrency"
	default:
		return field
	}
}
