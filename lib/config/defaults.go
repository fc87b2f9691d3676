package config

import (
	"path/filepath"
)

// ConfigDefaults contains the default values for the application settings.
type ConfigDefaults struct {
	// BaseDir is where config.yaml is looked up
	// Default: $HOME/.go-qcdb
	BaseDir string

	// Verbose is the log verbosity used for user assertions
	// Valid values: 0 (silent), 1 (log assertions), 2 (also log resolved values)
	// Default: 1
	Verbose int

	// Strict records user options as requirements rather than suggestions,
	// so a driver requirement that disagrees is reported as a conflict
	// Default: true
	Strict bool
}

// MaxVerbose is the highest supported verbosity level.
const MaxVerbose = 2

// Defaults returns the default application configuration.
func Defaults() ConfigDefaults {
	return ConfigDefaults{
		BaseDir: BuildDirPath(),
		Verbose: 1,
		Strict:  true,
	}
}

// Validate checks cfg for values the application cannot run with.
func Validate(cfg ConfigDefaults) error {
	if cfg.BaseDir == "" {
		return newValidationError("base_dir must not be empty")
	}
	if !filepath.IsAbs(cfg.BaseDir) {
		return newValidationError("base_dir must be an absolute path")
	}
	if cfg.Verbose < 0 || cfg.Verbose > MaxVerbose {
		return newValidationError("verbose must be between 0 and 2")
	}
	log.Debug("Application configuration validated successfully")
	return nil
}

// validationError is returned when configuration validation fails
type validationError struct {
	message string
}

func newValidationError(message string) error {
	return &validationError{message: message}
}

func (e *validationError) Error() string {
	return "configuration validation failed: " + e.message
}
