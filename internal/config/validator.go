package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/wesleyorama2/playground/internal/composer"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) []ValidationError {
	var errors []ValidationError

	if err := ValidateBaseURL(config.BaseURL); err != nil {
		errors = append(errors, ValidationError{Path: "baseUrl", Message: err.Error()})
	}

	if !strings.HasPrefix(config.HealthPath, "/") {
		errors = append(errors, ValidationError{
			Path:    "healthPath",
			Message: "healthPath must start with /",
		})
	}

	durations := []struct {
		path  string
		value string
	}{
		{"healthInterval", config.HealthInterval},
		{"timeout", config.Timeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := parseDurationString(d.value)
		if err != nil {
			errors = append(errors, ValidationError{
				Path:    d.path,
				Message: fmt.Sprintf("invalid duration '%s'", d.value),
			})
			continue
		}
		if parsed <= 0 {
			errors = append(errors, ValidationError{
				Path:    d.path,
				Message: "duration must be positive",
			})
		}
	}

	for i, preset := range config.Presets {
		path := fmt.Sprintf("presets[%d]", i)
		if !stringInSlice(preset.Method, composer.Methods) {
			errors = append(errors, ValidationError{
				Path:    path + ".method",
				Message: fmt.Sprintf("invalid method '%s', must be one of: %s", preset.Method, strings.Join(composer.Methods, ", ")),
			})
		}
		if !strings.HasPrefix(preset.Path, "/") {
			errors = append(errors, ValidationError{
				Path:    path + ".path",
				Message: "path must start with /",
			})
		}
	}

	return errors
}

// ValidateBaseURL checks that s is an absolute http or https URL
func ValidateBaseURL(s string) error {
	if s == "" {
		return fmt.Errorf("baseUrl is required")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid baseUrl: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("baseUrl must use http or https, got '%s'", s)
	}
	if u.Host == "" {
		return fmt.Errorf("baseUrl must include a host, got '%s'", s)
	}
	return nil
}
