package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestNewConfig(t *testing.T) {
	// Test with default values (without config file)
	config, err := NewConfig("nonexistent.yaml", noEnvFile(t))
	require.NoError(t, err)
	assert.NotNil(t, config)

	assert.Equal(t, "noaa-api", config.App.Name)
	assert.Equal(t, "1.0.0", config.App.Version)
	assert.Equal(t, "development", config.App.Env)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 10*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 120*time.Second, config.Server.IdleTimeout)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "api.weather.gov", config.NOAA.Host)
	assert.Equal(t, "application/geo+json", config.NOAA.Accept)
	assert.Equal(t, 5, config.NOAA.Retries)
	assert.False(t, config.NOAA.Breaker.Enabled)
	assert.Equal(t, 500, config.Observations.MaxRecords)
	assert.Empty(t, config.NCDC.Token)
	assert.True(t, config.IsDevelopment())
	assert.False(t, config.IsProduction())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	t.Setenv("APP_NAME", "test-app")
	t.Setenv("APP_VERSION", "2.0.0")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("NOAA_ACCEPT", "application/ld+json")
	t.Setenv("NOAA_BREAKER_ENABLED", "true")
	t.Setenv("NCDC_TOKEN", "secret")
	t.Setenv("OBSERVATIONS_MAX_RECORDS", "25")

	config, err := NewConfig("nonexistent.yaml", noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "test-app", config.App.Name)
	assert.Equal(t, "2.0.0", config.App.Version)
	assert.True(t, config.IsProduction())
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "application/ld+json", config.NOAA.Accept)
	assert.True(t, config.NOAA.Breaker.Enabled)
	assert.Equal(t, "secret", config.NCDC.Token)
	assert.Equal(t, 25, config.Observations.MaxRecords)
}

func TestConfigFromFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
app:
  name: yaml-app
server:
  port: "9000"
  read_timeout: 3s
noaa:
  user_agent: "(yaml, yaml@example.com)"
  retries: 2
  breaker:
    enabled: true
    failures: 3
`)

	config, err := NewConfig(path, noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "yaml-app", config.App.Name)
	assert.Equal(t, "9000", config.Server.Port)
	assert.Equal(t, 3*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, "(yaml, yaml@example.com)", config.NOAA.UserAgent)
	assert.Equal(t, 2, config.NOAA.Retries)
	assert.Equal(t, uint32(3), config.NOAA.Breaker.Failures)

	// values the file does not set keep their defaults
	assert.Equal(t, "1.0.0", config.App.Version)
	assert.Equal(t, "api.weather.gov", config.NOAA.Host)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "app:\n  name: yaml-app\nserver:\n  port: \"9000\"\n")
	t.Setenv("SERVER_PORT", "7070")

	config, err := NewConfig(path, noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "yaml-app", config.App.Name)
	assert.Equal(t, "7070", config.Server.Port)
}

func TestConfigFromEnvFile(t *testing.T) {
	// godotenv does not override variables that are already set
	t.Setenv("APP_NAME", "from-env")
	envFile := writeFile(t, ".env", "APP_NAME=from-dotenv\nAPP_VERSION=3.1.4\n")
	t.Cleanup(func() { _ = os.Unsetenv("APP_VERSION") })

	config, err := NewConfig("nonexistent.yaml", envFile)
	require.NoError(t, err)

	assert.Equal(t, "from-env", config.App.Name)
	assert.Equal(t, "3.1.4", config.App.Version)
}

func TestInvalidConfigFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "app: [unclosed")

	_, err := NewConfig(path, noEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML config")
}

func TestInvalidEnvironmentValue(t *testing.T) {
	t.Setenv("NOAA_RETRIES", "many")

	_, err := NewConfig("nonexistent.yaml", noEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error environment variable parsing")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing name", func(c *Config) { c.App.Name = "" }, "app.name is required"},
		{"bad port", func(c *Config) { c.Server.Port = "http" }, "server.port must satisfy numeric="},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level must satisfy oneof=debug info warn error"},
		{"bad accept", func(c *Config) { c.NOAA.Accept = "text/html" }, "noaa.accept must be one of"},
		{"too many retries", func(c *Config) { c.NOAA.Retries = 11 }, "noaa.retries must satisfy max=10"},
		{"breaker without failures", func(c *Config) {
			c.NOAA.Breaker.Enabled = true
			c.NOAA.Breaker.Failures = 0
		}, "noaa.breaker.failures must satisfy required_if=Enabled true"},
		{"no records", func(c *Config) { c.Observations.MaxRecords = 0 }, "observations.max_records must satisfy min=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.App.Name = ""
	cfg.App.Version = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.name is required; app.version is required")
}

func TestShippedConfigIsValid(t *testing.T) {
	config, err := NewConfig("config.yaml", noEnvFile(t))
	require.NoError(t, err)
	assert.True(t, config.NOAA.Breaker.Enabled)
}
