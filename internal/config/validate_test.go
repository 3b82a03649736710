package config

// Test Plan for validation:
// - The default configuration is valid
// - fail_on accepts every severity, case-insensitive, and empty
// - Unknown fail_on values map to ErrInvalidSeverity
// - Negative memory capacity maps to ErrInvalidCacheSettings
// - Multiple problems are joined into one error

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefault(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Validate(Default()))
}

func TestValidateFailOn(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "CRITICAL", "HIGH", "MEDIUM", "LOW", "INFO", "high", "Critical"} {
		cfg := Default()
		cfg.Scan.FailOn = value
		assert.NoError(t, Validate(cfg), "fail_on %q should be valid", value)
	}

	cfg := Default()
	cfg.Scan.FailOn = "URGENT"
	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSeverity)
}

func TestValidateCache(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Cache.MemoryCapacity = -1
	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCacheSettings)
}

func TestValidateJoinsErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Scan.FailOn = "URGENT"
	cfg.Cache.MemoryCapacity = -5

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "severity")
	assert.Contains(t, err.Error(), "memory_capacity")
}
