package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// validOutputFormats are the formats accepted for the output setting.
var validOutputFormats = map[string]bool{
	"yaml":  true,
	"json":  true,
	"table": true,
}

// Validate checks the tool configuration for invalid values.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Output != "" && !validOutputFormats[strings.ToLower(cfg.Output)] {
		errs = append(errs, ValidationError{
			Field:   "output",
			Message: fmt.Sprintf("unknown output format %q (valid: yaml, json, table)", cfg.Output),
		})
	}

	if cfg.ExperimentsDir != "" && strings.TrimSpace(cfg.ExperimentsDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "experimentsDir",
			Message: "must not be whitespace only",
		})
	}

	if cfg.OutDir != "" && strings.TrimSpace(cfg.OutDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "outDir",
			Message: "must not be whitespace only",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateFile validates a configuration file at the given path.
func ValidateFile(path string) error {
	loader := NewLoader()
	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return Validate(cfg)
}
