package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/playground/internal/composer"
	"github.com/wesleyorama2/playground/internal/health"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playground.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
baseUrl: https://portfolio.example.com
healthInterval: 10 seconds
timeout: 2s
presets:
  - name: Certificates
    method: get
    path: /certificates
  - method: POST
    path: /dsa
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://portfolio.example.com", cfg.BaseURL)
	assert.Equal(t, health.DefaultPath, cfg.HealthPath)
	assert.Equal(t, 10*time.Second, cfg.HealthIntervalDuration())
	assert.Equal(t, 2*time.Second, cfg.TimeoutDuration())
	assert.Equal(t, []composer.Preset{
		{Name: "Certificates", Method: "GET", Path: "/certificates"},
		{Method: "POST", Path: "/dsa"},
	}, cfg.Presets)
	assert.Empty(t, ValidateConfig(cfg))
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	path := writeConfig(t, "healthPath: /api/health\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "/api/health", cfg.HealthPath)
	assert.Equal(t, health.DefaultInterval, cfg.HealthIntervalDuration())
	assert.Equal(t, DefaultTimeout, cfg.TimeoutDuration())
	assert.Equal(t, composer.DefaultPresets(), cfg.Presets)
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "baseUrl: [unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing config file")
}

func TestLoadConfig_UnknownField(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "baseURL: http://localhost:9000\n"))
	require.Error(t, err)
}

func TestDefault_UsesEnvironment(t *testing.T) {
	t.Setenv(BaseURLEnv, "http://api.internal:9000")
	assert.Equal(t, "http://api.internal:9000", Default().BaseURL)

	t.Setenv(BaseURLEnv, "")
	assert.Equal(t, DefaultBaseURL, Default().BaseURL)
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	assert.Equal(t, "", FindConfig())

	require.NoError(t, os.WriteFile(DefaultFileName, []byte("baseUrl: http://x\n"), 0644))
	assert.Equal(t, DefaultFileName, FindConfig())
}

func TestDurationFallbacks(t *testing.T) {
	cfg := &Config{HealthInterval: "soon", Timeout: "-1s"}
	assert.Equal(t, health.DefaultInterval, cfg.HealthIntervalDuration())
	assert.Equal(t, DefaultTimeout, cfg.TimeoutDuration())
}

func TestParseDurationString(t *testing.T) {
	tests := []struct {
		input       string
		expected    time.Duration
		expectError bool
	}{
		{input: "30s", expected: 30 * time.Second},
		{input: "1h30m", expected: 90 * time.Minute},
		{input: "100ms", expected: 100 * time.Millisecond},
		{input: "5 seconds", expected: 5 * time.Second},
		{input: "1 second", expected: time.Second},
		{input: "2 Minutes", expected: 2 * time.Minute},
		{input: "1 hour", expected: time.Hour},
		{input: "", expectError: true},
		{input: "later", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDurationString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
