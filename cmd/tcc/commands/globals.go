// Package commands implements the tcc subcommands.
package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/tcc/pkg/config"
	"github.com/Sumatoshi-tech/tcc/pkg/observability"
	"github.com/Sumatoshi-tech/tcc/pkg/version"
)

// Globals holds the persistent flags shared by every subcommand.
type Globals struct {
	ConfigPath string
	Verbose    bool
	LogJSON    bool
}

// Register adds the persistent flags to root.
func (g *Globals) Register(root *cobra.Command) {
	root.PersistentFlags().StringVar(&g.ConfigPath, "config", "", "Config file (default: ./.tcc.yaml or $HOME/.config/tcc/.tcc.yaml)")
	root.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&g.LogJSON, "log-json", false, "Write logs as JSON")
}

// loadConfig reads the configuration file and environment.
func (g *Globals) loadConfig() (*config.Config, error) {
	return config.LoadConfig(g.ConfigPath)
}

// observe initializes telemetry for cfg. Logs go to the command's stderr.
func (g *Globals) observe(cmd *cobra.Command, cfg *config.Config, mode observability.AppMode) (observability.Providers, error) {
	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return observability.Providers{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Get().Version
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.MetricsTextfile = cfg.Metrics.Textfile
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.JSON || g.LogJSON
	obsCfg.LogOutput = cmd.ErrOrStderr()

	if g.Verbose {
		obsCfg.LogLevel = slog.LevelDebug
	}

	return observability.Init(obsCfg)
}

// shutdown flushes providers and folds a failure into err.
func shutdown(providers observability.Providers, err *error) {
	shutdownErr := providers.Shutdown(context.Background())
	if shutdownErr != nil {
		*err = errors.Join(*err, shutdownErr)
	}
}
