package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/playground/internal/composer"
	"github.com/wesleyorama2/playground/internal/health"
)

const (
	// DefaultBaseURL is the API the playground targets when nothing else is set
	DefaultBaseURL = "http://localhost:8000"
	// DefaultTimeout bounds every send
	DefaultTimeout = 30 * time.Second
	// DefaultFileName is picked up from the working directory when --config is not given
	DefaultFileName = "playground.yaml"
	// BaseURLEnv overrides the default base URL
	BaseURLEnv = "PLAYGROUND_BASE_URL"
)

// Config represents the playground configuration file
type Config struct {
	BaseURL        string            `yaml:"baseUrl"`
	HealthPath     string            `yaml:"healthPath,omitempty"`
	HealthInterval string            `yaml:"healthInterval,omitempty"`
	Timeout        string            `yaml:"timeout,omitempty"`
	Presets        []composer.Preset `yaml:"presets,omitempty"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	baseURL := DefaultBaseURL
	if env := strings.TrimSpace(os.Getenv(BaseURLEnv)); env != "" {
		baseURL = env
	}
	return &Config{
		BaseURL:        baseURL,
		HealthPath:     health.DefaultPath,
		HealthInterval: health.DefaultInterval.String(),
		Timeout:        DefaultTimeout.String(),
		Presets:        composer.DefaultPresets(),
	}
}

// LoadConfig loads a configuration file on top of the defaults. Keys that
// are absent keep their default; a presets list replaces the built-in one.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	config.normalize()
	return config, nil
}

// FindConfig returns DefaultFileName if it exists in the working directory
func FindConfig() string {
	if info, err := os.Stat(DefaultFileName); err == nil && !info.IsDir() {
		return DefaultFileName
	}
	return ""
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.HealthPath = strings.TrimSpace(c.HealthPath)
	if c.HealthPath == "" {
		c.HealthPath = health.DefaultPath
	}
	for i := range c.Presets {
		c.Presets[i].Method = strings.ToUpper(strings.TrimSpace(c.Presets[i].Method))
		c.Presets[i].Path = strings.TrimSpace(c.Presets[i].Path)
	}
}

// HealthIntervalDuration returns the probe interval, falling back to the
// default when the value is empty or invalid
func (c *Config) HealthIntervalDuration() time.Duration {
	if d, err := parseDurationString(c.HealthInterval); err == nil && d > 0 {
		return d
	}
	return health.DefaultInterval
}

// TimeoutDuration returns the send timeout, falling back to the default
// when the value is empty or invalid
func (c *Config) TimeoutDuration() time.Duration {
	if d, err := parseDurationString(c.Timeout); err == nil && d > 0 {
		return d
	}
	return DefaultTimeout
}

// parseDurationString parses duration strings like "30s", "5m", "1h" as well
// as spelled-out forms like "5 seconds"
func parseDurationString(duration string) (time.Duration, error) {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return 0, fmt.Errorf("duration cannot be empty")
	}

	if d, err := time.ParseDuration(duration); err == nil {
		return d, nil
	}

	duration = strings.ToLower(duration)
	duration = strings.ReplaceAll(duration, " ", "")

	// Longer words first so "seconds" is not rewritten as "s" + "s"
	replacements := []struct{ word, abbrev string }{
		{"seconds", "s"},
		{"second", "s"},
		{"minutes", "m"},
		{"minute", "m"},
		{"hours", "h"},
		{"hour", "h"},
	}
	for _, r := range replacements {
		duration = strings.ReplaceAll(duration, r.word, r.abbrev)
	}

	return time.ParseDuration(duration)
}

// stringInSlice checks if a string is in a slice
func stringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
