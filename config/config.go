// Package config loads valkit configuration from layered sources: built-in
// defaults, optional YAML files, then VALKIT_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/valkit/valkit"
	"github.com/valkit/valkit/valerrors"
)

// EnvPrefix is the prefix of all recognized environment overrides.
const EnvPrefix = "VALKIT_"

// Config is the full application configuration.
type Config struct {
	HTTP       HTTP       `yaml:"http"`
	Logging    Logging    `yaml:"logging"`
	Storage    Storage    `yaml:"storage"`
	Validation Validation `yaml:"validation"`
}

// HTTP configures the outbound HTTP client.
type HTTP struct {
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	MaxRetries         int    `yaml:"max_retries"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
	UserAgent          string `yaml:"user_agent"`
}

// Logging configures log output.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Storage configures on-disk persistence.
type Storage struct {
	BasePath      string `yaml:"base_path"`
	BackupEnabled bool   `yaml:"backup_enabled"`
	MaxBackups    int    `yaml:"max_backups"`
}

// Validation configures validator defaults.
type Validation struct {
	IncludeWarnings bool `yaml:"include_warnings"`
	MaxDepth        int  `yaml:"max_depth"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTTP: HTTP{
			TimeoutSeconds:     30,
			MaxRetries:         3,
			RateLimitPerMinute: 60,
			UserAgent:          valkit.UserAgent(),
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		Storage: Storage{
			BasePath:      "./data",
			BackupEnabled: true,
			MaxBackups:    5,
		},
		Validation: Validation{
			IncludeWarnings: true,
			MaxDepth:        64,
		},
	}
}

// Load builds a Config by layering: defaults, then each YAML file in order
// (missing files are tolerated, unreadable or malformed ones are errors),
// then VALKIT_* environment overrides. The result is validated before
// return.
func Load(paths ...string) (Config, error) {
	cfg := Default()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays recognized VALKIT_* environment variables.
func applyEnv(cfg *Config) {
	envString(&cfg.Logging.Level, "LOG_LEVEL")
	envString(&cfg.Logging.Format, "LOG_FORMAT")
	envString(&cfg.Logging.Output, "LOG_OUTPUT")
	envString(&cfg.Storage.BasePath, "STORAGE_PATH")
	envBool(&cfg.Storage.BackupEnabled, "STORAGE_BACKUPS")
	envInt(&cfg.Storage.MaxBackups, "STORAGE_MAX_BACKUPS")
	envInt(&cfg.HTTP.TimeoutSeconds, "HTTP_TIMEOUT")
	envInt(&cfg.HTTP.MaxRetries, "HTTP_MAX_RETRIES")
	envInt(&cfg.HTTP.RateLimitPerMinute, "HTTP_RATE_LIMIT")
	envString(&cfg.HTTP.UserAgent, "HTTP_USER_AGENT")
	envBool(&cfg.Validation.IncludeWarnings, "INCLUDE_WARNINGS")
	envInt(&cfg.Validation.MaxDepth, "MAX_DEPTH")
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// Validate sanity-checks the configuration.
func (c Config) Validate() error {
	if c.HTTP.TimeoutSeconds <= 0 {
		return &valerrors.ConfigError{
			Option:  "http.timeout_seconds",
			Value:   strconv.Itoa(c.HTTP.TimeoutSeconds),
			Message: "must be positive",
		}
	}
	if c.HTTP.MaxRetries < 0 {
		return &valerrors.ConfigError{
			Option:  "http.max_retries",
			Value:   strconv.Itoa(c.HTTP.MaxRetries),
			Message: "must not be negative",
		}
	}
	if c.HTTP.RateLimitPerMinute <= 0 {
		return &valerrors.ConfigError{
			Option:  "http.rate_limit_per_minute",
			Value:   strconv.Itoa(c.HTTP.RateLimitPerMinute),
			Message: "must be positive",
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &valerrors.ConfigError{
			Option:  "logging.level",
			Value:   c.Logging.Level,
			Message: "must be one of debug, info, warn, error",
		}
	}
	if c.Storage.BasePath == "" {
		return &valerrors.ConfigError{
			Option:  "storage.base_path",
			Message: "must not be empty",
		}
	}
	if c.Storage.MaxBackups < 0 {
		return &valerrors.ConfigError{
			Option:  "storage.max_backups",
			Value:   strconv.Itoa(c.Storage.MaxBackups),
			Message: "must not be negative",
		}
	}
	if c.Validation.MaxDepth <= 0 {
		return &valerrors.ConfigError{
			Option:  "validation.max_depth",
			Value:   strconv.Itoa(c.Validation.MaxDepth),
			Message: "must be positive",
		}
	}
	return nil
}
