// Package config loads pyaudit configuration from .pyaudit/config.yml with
// environment variable overrides.
package config

// Config is the complete pyaudit configuration.
type Config struct {
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Pretty bool `yaml:"pretty" mapstructure:"pretty"` // indent JSON output
}

// ScanConfig controls file discovery and finding thresholds.
type ScanConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
	FailOn  string   `yaml:"fail_on" mapstructure:"fail_on"` // severity threshold for a non-zero exit
}

// CacheConfig controls the analysis result cache.
type CacheConfig struct {
	Enabled        bool   `yaml:"enabled" mapstructure:"enabled"`
	Location       string `yaml:"location" mapstructure:"location"`               // override default ~/.pyaudit/cache
	MemoryCapacity int    `yaml:"memory_capacity" mapstructure:"memory_capacity"` // in-memory entries in front of sqlite
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Pretty: false,
		},
		Scan: ScanConfig{
			Include: []string{"**/*.py"},
			Ignore: []string{
				".git/**",
				"venv/**",
				".venv/**",
				"__pycache__/**",
				"node_modules/**",
				"build/**",
				"dist/**",
			},
			FailOn: "", // empty disables threshold exit codes
		},
		Cache: CacheConfig{
			Enabled:        true,
			Location:       "", // empty means ~/.pyaudit/cache
			MemoryCapacity: 1024,
		},
	}
}
