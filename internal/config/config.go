package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment variable, e.g. FOOTFALL_SERVER_PORT.
const EnvPrefix = "FOOTFALL"

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	AllowedOrigins  []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"*"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Disabled bool    `yaml:"disabled" envconfig:"DISABLED" default:"false"`
	RPS      float64 `yaml:"rps" envconfig:"RPS" default:"20"`
	Burst    int     `yaml:"burst" envconfig:"BURST" default:"40"`
}

// DataConfig controls where the traffic table is loaded from
type DataConfig struct {
	// Source is a file path or an http(s) URL.
	Source       string        `yaml:"source" envconfig:"SOURCE" default:"data/traffic.csv"`
	Location     string        `yaml:"location" envconfig:"LOCATION" default:"Asia/Tokyo"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" envconfig:"FETCH_TIMEOUT" default:"0s"`
	Watch        bool          `yaml:"watch" envconfig:"WATCH" default:"false"`
	Debounce     time.Duration `yaml:"debounce" envconfig:"DEBOUNCE" default:"500ms"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
}

// Load applies defaults, then the YAML file named by FOOTFALL_CONFIG (or
// config.yaml when present), then any environment variable that is set.
func Load() (*Config, error) {
	var cfg Config

	// Environment variables first; unset ones take their default tag.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	path := os.Getenv(EnvPrefix + "_CONFIG")
	explicit := path != ""
	if !explicit {
		path = "config.yaml"
	}

	fileConfig, err := loadFromFile(path)
	switch {
	case err == nil:
		cfg = mergeConfigs(*fileConfig, cfg)
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to load config from file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}
	return &cfg, nil
}

// envSet reports whether FOOTFALL_<key> is present in the environment.
func envSet(key string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + key)
	return ok
}

// mergeConfigs copies non-zero file values over envConfig, except where
// the matching environment variable is set (env takes precedence).
func mergeConfigs(file, env Config) Config {
	if file.Server.Port != 0 && !envSet("SERVER_PORT") {
		env.Server.Port = file.Server.Port
	}
	if file.Server.ReadTimeout != 0 && !envSet("SERVER_READ_TIMEOUT") {
		env.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if file.Server.WriteTimeout != 0 && !envSet("SERVER_WRITE_TIMEOUT") {
		env.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if file.Server.ShutdownTimeout != 0 && !envSet("SERVER_SHUTDOWN_TIMEOUT") {
		env.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if len(file.Server.AllowedOrigins) > 0 && !envSet("SERVER_ALLOWED_ORIGINS") {
		env.Server.AllowedOrigins = file.Server.AllowedOrigins
	}
	if file.Server.RateLimit.Disabled && !envSet("SERVER_RATE_LIMIT_DISABLED") {
		env.Server.RateLimit.Disabled = true
	}
	if file.Server.RateLimit.RPS != 0 && !envSet("SERVER_RATE_LIMIT_RPS") {
		env.Server.RateLimit.RPS = file.Server.RateLimit.RPS
	}
	if file.Server.RateLimit.Burst != 0 && !envSet("SERVER_RATE_LIMIT_BURST") {
		env.Server.RateLimit.Burst = file.Server.RateLimit.Burst
	}
	if file.Data.Source != "" && !envSet("DATA_SOURCE") {
		env.Data.Source = file.Data.Source
	}
	if file.Data.Location != "" && !envSet("DATA_LOCATION") {
		env.Data.Location = file.Data.Location
	}
	if file.Data.FetchTimeout != 0 && !envSet("DATA_FETCH_TIMEOUT") {
		env.Data.FetchTimeout = file.Data.FetchTimeout
	}
	if file.Data.Watch && !envSet("DATA_WATCH") {
		env.Data.Watch = true
	}
	if file.Data.Debounce != 0 && !envSet("DATA_DEBOUNCE") {
		env.Data.Debounce = file.Data.Debounce
	}
	if file.Logging.Level != "" && !envSet("LOGGING_LEVEL") {
		env.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" && !envSet("LOGGING_FORMAT") {
		env.Logging.Format = file.Logging.Format
	}
	return env
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Data.Source) == "" {
		return errors.New("data source is required")
	}
	if c.Data.FetchTimeout < 0 {
		return fmt.Errorf("fetch timeout must not be negative: %s", c.Data.FetchTimeout)
	}
	if !c.Server.RateLimit.Disabled && c.Server.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive: %v", c.Server.RateLimit.RPS)
	}
	if _, err := time.LoadLocation(c.Data.Location); err != nil {
		return fmt.Errorf("invalid data location %q: %w", c.Data.Location, err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
