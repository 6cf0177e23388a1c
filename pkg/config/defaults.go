package config

// DefaultConfigName is the base name of the searched config file.
const DefaultConfigName = ".tcc"

// Output defaults. A zero width means "detect from the terminal".
const (
	DefaultFormat = "markdown"
	DefaultWidth  = 0
)

// DefaultLocation is the time zone export timestamps are read in.
const DefaultLocation = "UTC"

// DefaultLogLevel is the default slog level name.
const DefaultLogLevel = "info"
