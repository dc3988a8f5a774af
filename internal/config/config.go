// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap/zapcore"
)

// Defaults used when neither a config file, the environment, nor a flag sets a value
const (
	DefaultPort           = 8080
	DefaultCoreQuota      = 50
	DefaultScoreCacheSize = 1024
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
)

// Config represents configuration that can be loaded from a JSON file or the environment.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	DatabaseURL    string `json:"database_url,omitempty"`     // PostgreSQL connection URL
	Port           int    `json:"port,omitempty"`             // HTTP listen port
	CoreQuota      int    `json:"core_quota,omitempty"`       // Participants per core taxonomy before exploratory ones open
	ScoreCacheSize int    `json:"score_cache_size,omitempty"` // Entries kept by the score cache
	LogLevel       string `json:"log_level,omitempty"`        // debug, info, warn, error
	LogFormat      string `json:"log_format,omitempty"`       // json or console
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:           DefaultPort,
		CoreQuota:      DefaultCoreQuota,
		ScoreCacheSize: DefaultScoreCacheSize,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// LoadConfig loads configuration from a JSON file.
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset or unparseable
// numeric variables are left zero.
func FromEnv() Config {
	return Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           envInt("PORT"),
		CoreQuota:      envInt("CORE_QUOTA"),
		ScoreCacheSize: envInt("SCORE_CACHE_SIZE"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFormat:      os.Getenv("LOG_FORMAT"),
	}
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.CoreQuota < 0 {
		return fmt.Errorf("config error: 'core_quota' must be non-negative")
	}
	if c.ScoreCacheSize < 0 {
		return fmt.Errorf("config error: 'score_cache_size' must be non-negative")
	}

	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid 'log_level' %q", c.LogLevel)
		}
	}
	switch c.LogFormat {
	case "", "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console, got %q", c.LogFormat)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer file, environment, and built-in values under CLI flags.
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

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.CoreQuota == 0 {
		result.CoreQuota = defaults.CoreQuota
	}
	if result.ScoreCacheSize == 0 {
		result.ScoreCacheSize = defaults.ScoreCacheSize
	}

	return result
}

// Resolve layers the optional config file over the environment over the
// built-in defaults and validates the result.
func Resolve(path string) (Config, error) {
	env := FromEnv()
	merged := env.MergeWithDefaults(Defaults())

	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		merged = file.MergeWithDefaults(merged)
	}

	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
