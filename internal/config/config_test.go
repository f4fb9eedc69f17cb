package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points FOOTFALL_CONFIG at a file that may or may not exist.
func isolate(t *testing.T, yamlBody string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if yamlBody != "" {
		require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))
	}
	t.Setenv(EnvPrefix+"_CONFIG", path)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t, "server:\n  port: 8080\n")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Server.RateLimit.Disabled)
	assert.Equal(t, 20.0, cfg.Server.RateLimit.RPS)
	assert.Equal(t, "data/traffic.csv", cfg.Data.Source)
	assert.Equal(t, "Asia/Tokyo", cfg.Data.Location)
	assert.Zero(t, cfg.Data.FetchTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Data.Debounce)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	isolate(t, `
server:
  port: 9090
  rate_limit:
    disabled: true
data:
  source: https://example.com/traffic.csv
  watch: true
  fetch_timeout: 5s
logging:
  format: text
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.RateLimit.Disabled)
	assert.Equal(t, "https://example.com/traffic.csv", cfg.Data.Source)
	assert.True(t, cfg.Data.Watch)
	assert.Equal(t, 5*time.Second, cfg.Data.FetchTimeout)
	assert.Equal(t, "text", cfg.Logging.Format)
	// Untouched by the file.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	isolate(t, "server:\n  port: 9090\ndata:\n  source: from-file.csv\n")
	t.Setenv("FOOTFALL_SERVER_PORT", "7070")
	t.Setenv("FOOTFALL_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "from-file.csv", cfg.Data.Source)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv(EnvPrefix+"_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	isolate(t, "server: [this is not a map\n")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{Port: 8080, RateLimit: RateLimitConfig{RPS: 1}},
			Data:    DataConfig{Source: "x.csv", Location: "UTC"},
			Logging: LoggingConfig{Format: "json"},
		}
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"source", func(c *Config) { c.Data.Source = " " }},
		{"timeout", func(c *Config) { c.Data.FetchTimeout = -time.Second }},
		{"rps", func(c *Config) { c.Server.RateLimit.RPS = 0 }},
		{"location", func(c *Config) { c.Data.Location = "Mars/Olympus" }},
		{"format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg = valid()
	cfg.Server.RateLimit = RateLimitConfig{Disabled: true}
	assert.NoError(t, cfg.Validate())
}
