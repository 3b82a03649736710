package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSeverity indicates an unsupported fail_on threshold
	ErrInvalidSeverity = errors.New("invalid severity threshold")

	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")
)

// knownSeverities are the accepted fail_on values, case-insensitive.
var knownSeverities = map[string]bool{
	"critical": true,
	"high":     true,
	"medium":   true,
	"low":      true,
	"info":     true,
}

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}

	if err := validateCache(&cfg.Cache); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateScan(cfg *ScanConfig) error {
	// Include/ignore patterns can be empty - discovery handles that gracefully
	if cfg.FailOn == "" {
		return nil
	}
	if !knownSeverities[strings.ToLower(cfg.FailOn)] {
		return fmt.Errorf("%w: must be one of CRITICAL, HIGH, MEDIUM, LOW, INFO, got '%s'", ErrInvalidSeverity, cfg.FailOn)
	}
	return nil
}

func validateCache(cfg *CacheConfig) error {
	if cfg.MemoryCapacity < 0 {
		return fmt.Errorf("%w: memory_capacity cannot be negative, got %d", ErrInvalidCacheSettings, cfg.MemoryCapacity)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
