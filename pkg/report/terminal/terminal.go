// Package terminal provides rendering helpers for the text report.
package terminal

import (
	"os"
	"strconv"
)

// Default width constants.
const (
	DefaultWidth = 80
	MinWidth     = 60
	MaxWidth     = 160
)

// Config holds terminal rendering configuration.
type Config struct {
	Width   int
	NoColor bool
}

// NewConfig creates a Config from the environment.
func NewConfig() Config {
	return Config{
		Width:   DetectWidth(),
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// DetectWidth returns the terminal width from the COLUMNS environment variable,
// or DefaultWidth if not set or invalid.
func DetectWidth() int {
	columnsEnv := os.Getenv("COLUMNS")
	if columnsEnv == "" {
		return DefaultWidth
	}

	width, err := strconv.Atoi(columnsEnv)
	if err != nil {
		return DefaultWidth
	}

	return width
}

// Clamped returns the configured width limited to [MinWidth, MaxWidth].
// A zero width means DefaultWidth.
func (c Config) Clamped() int {
	switch {
	case c.Width == 0:
		return DefaultWidth
	case c.Width < MinWidth:
		return MinWidth
	case c.Width > MaxWidth:
		return MaxWidth
	default:
		return c.Width
	}
}
