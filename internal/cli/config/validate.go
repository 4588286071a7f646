package config

import "fmt"

// outputFormats lists the accepted values for the output key.
var outputFormats = map[string]bool{
	"auto":     true,
	"text":     true,
	"markdown": true,
	"md":       true,
	"json":     true,
	"yaml":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !outputFormats[c.OutputFormat] {
		return fmt.Errorf("unknown output format %q (want auto|text|markdown|json|yaml)", c.OutputFormat)
	}
	if c.MaxElements <= 0 {
		return fmt.Errorf("max_elements must be positive, got %d", c.MaxElements)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}
