// Package config provides configuration loading and validation for tcc.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // analysis.location must resolve on hosts without zoneinfo.

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/tcc/pkg/report"
)

// Sentinel validation errors.
var (
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrInvalidWidth       = errors.New("output width must not be negative")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLocation    = errors.New("invalid time zone")
	ErrInvalidSampleRatio = errors.New("telemetry.sample_ratio must be within [0, 1]")
	ErrHolidayConflict    = errors.New("holidays.file and holidays.disabled are mutually exclusive")
)

// EnvPrefix prefixes environment overrides, e.g. TCC_OUTPUT_FORMAT.
const EnvPrefix = "TCC"

// Config holds all configuration for the tcc CLI.
type Config struct {
	Output    OutputConfig    `mapstructure:"output"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Holidays  HolidaysConfig  `mapstructure:"holidays"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// OutputConfig holds report rendering configuration.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	Width   int    `mapstructure:"width"`
	NoColor bool   `mapstructure:"no_color"`
}

// AnalysisConfig holds analysis configuration.
type AnalysisConfig struct {
	// Location is the IANA time zone export timestamps are read in.
	Location string `mapstructure:"location"`
	// Weekends also classifies Saturdays and Sundays as holidays.
	Weekends bool `mapstructure:"weekends"`
}

// HolidaysConfig selects the holiday table.
type HolidaysConfig struct {
	File     string `mapstructure:"file"`
	Disabled bool   `mapstructure:"disabled"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry export configuration.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	// SampleRatio is the root trace sampling ratio. Zero samples every trace.
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// MetricsConfig holds Prometheus textfile export configuration.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// LoadConfig loads configuration from file and environment variables. An empty
// configPath searches for .tcc.yaml; a missing file there is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(DefaultConfigName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME/.config/tcc")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("output.format", DefaultFormat)
	viperCfg.SetDefault("output.width", DefaultWidth)
	viperCfg.SetDefault("output.no_color", false)

	viperCfg.SetDefault("analysis.location", DefaultLocation)
	viperCfg.SetDefault("analysis.weekends", false)

	viperCfg.SetDefault("holidays.file", "")
	viperCfg.SetDefault("holidays.disabled", false)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.json", false)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.sample_ratio", 0.0)

	viperCfg.SetDefault("metrics.textfile", "")
}

// Validate checks the configuration and canonicalizes the output format.
func (c *Config) Validate() error {
	format, err := report.ValidateFormat(c.Output.Format)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, c.Output.Format)
	}

	c.Output.Format = format

	if c.Output.Width < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, c.Output.Width)
	}

	_, err = ParseLevel(c.Logging.Level)
	if err != nil {
		return err
	}

	_, err = c.Analysis.TimeLocation()
	if err != nil {
		return err
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, c.Telemetry.SampleRatio)
	}

	if c.Holidays.Disabled && c.Holidays.File != "" {
		return ErrHolidayConflict
	}

	return nil
}

// TimeLocation resolves the configured time zone.
func (a AnalysisConfig) TimeLocation() (*time.Location, error) {
	if a.Location == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(a.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLocation, a.Location)
	}

	return loc, nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
	}
}
