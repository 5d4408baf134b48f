package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrNegativeTimeout indicates check_timeout is negative.
	ErrNegativeTimeout = errors.New("check_timeout must not be negative")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// PathError wraps a path validation failure with its field name.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %q: %v", e.Field, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.CheckTimeout < 0 {
		errs = append(errs, ErrNegativeTimeout)
	}

	pathFields := []struct {
		field string
		path  string
	}{
		{"config_path", cfg.ConfigPath},
		{"project_path", cfg.ProjectPath},
	}
	for _, f := range pathFields {
		if err := validatePath(f.path); err != nil {
			errs = append(errs, &PathError{Field: f.field, Path: f.path, Err: err})
		}
	}
	for i, path := range cfg.CandidatePaths {
		if err := validatePath(path); err != nil {
			errs = append(errs, &PathError{
				Field: fmt.Sprintf("candidate_paths[%d]", i),
				Path:  path,
				Err:   err,
			})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	return nil
}
