// Package config handles pmxtool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Parse   ParseConfig   `yaml:"parse"`
	Dump    DumpConfig    `yaml:"dump"`
	Logging LoggingConfig `yaml:"logging"`
}

// ParseConfig holds parser behavior settings.
type ParseConfig struct {
	// Validation selects the reference validation mode: "first" stops at
	// the first dangling reference, "all" collects every one, "skip"
	// disables the check.
	Validation string `yaml:"validation"`
}

// DumpConfig holds dump output settings.
type DumpConfig struct {
	Limit   int    `yaml:"limit"`   // records shown per section, 0 = all
	Section string `yaml:"section"` // default section filter, "" = all
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			Validation: "first",
		},
		Dump: DumpConfig{
			Limit:   20,
			Section: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
