// Package config provides configuration management for the stoich CLI.
//
// Configuration is merged from defaults, an optional stoich.yaml file,
// STOICH_-prefixed environment variables, and command-line flags, in
// ascending order of precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat string `koanf:"output"`
	Unicode      bool   `koanf:"unicode"`
	Verbose      bool   `koanf:"verbose"`
	Prompt       string `koanf:"prompt"`
	HistoryFile  string `koanf:"history_file"`

	// Input guards. The core performs no size checks of its own, so the
	// CLI bounds the exponential determinant cost before calling it.
	MaxElements int `koanf:"max_elements"`
	MaxDepth    int `koanf:"max_depth"`
}

// Default configuration values
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPrompt      = "stoich> "
	DefaultHistoryFile = ".stoich_history"
	DefaultMaxElements = 8
	DefaultMaxDepth    = 16
)

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		Unicode:      true,
		Prompt:       DefaultPrompt,
		HistoryFile:  DefaultHistoryFile,
		MaxElements:  DefaultMaxElements,
		MaxDepth:     DefaultMaxDepth,
	}
}
