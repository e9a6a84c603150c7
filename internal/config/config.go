package config

import (
	"github.com/mvp-joe/reqext/internal/rules"
)

// Config represents the complete reqext configuration.
// It can be loaded from .reqext/config.yml with environment variable overrides.
type Config struct {
	Rules  map[string]string `yaml:"rules" mapstructure:"rules"`
	Paths  PathsConfig       `yaml:"paths" mapstructure:"paths"`
	Run    RunConfig         `yaml:"run" mapstructure:"run"`
	Output OutputConfig      `yaml:"output" mapstructure:"output"`
	Log    LogConfig         `yaml:"log" mapstructure:"log"`
}

// PathsConfig defines which files to lint and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// RunConfig controls how files are processed.
type RunConfig struct {
	Workers      int `yaml:"workers" mapstructure:"workers"`               // 0 means runtime.NumCPU()
	MaxFixPasses int `yaml:"max_fix_passes" mapstructure:"max_fix_passes"` // re-lint passes when fixing
}

// OutputConfig selects the report format.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "stylish", "compact" or "json"
}

// LogConfig configures the diagnostic logger (not the lint report).
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text, json, logfmt
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Rules: rules.Recommended(),
		Paths: PathsConfig{
			Include: []string{
				"**/*.js",
				"**/*.jsx",
				"**/*.mjs",
				"**/*.cjs",
				"**/*.ts",
				"**/*.tsx",
				"**/*.mts",
				"**/*.cts",
			},
			Ignore: []string{
				"node_modules/**",
				"**/node_modules/**",
				".git/**",
				"dist/**",
				"build/**",
				"coverage/**",
				"**/*.min.js",
			},
		},
		Run: RunConfig{
			Workers:      0,
			MaxFixPasses: 10,
		},
		Output: OutputConfig{
			Format: "stylish",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Severities resolves the configured rule severities. Rules missing from the
// config are off.
func (c *Config) Severities() (map[string]rules.Severity, error) {
	out := make(map[string]rules.Severity, len(c.Rules))
	for name, value := range c.Rules {
		sev, err := rules.ParseSeverity(value)
		if err != nil {
			return nil, err
		}
		out[name] = sev
	}
	return out, nil
}
