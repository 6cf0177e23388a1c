package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/tcc/pkg/mcp"
	"github.com/Sumatoshi-tech/tcc/pkg/observability"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(globals *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes tcc as tools that AI agents can discover and invoke:
  - tcc_projects: List the projects of a TaskChute Cloud export
  - tcc_analyze: Build the review of one project`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := globals.loadConfig()
			if err != nil {
				return err
			}

			// stdout carries the protocol; logs stay structured on stderr.
			cfg.Logging.JSON = true

			providers, err := globals.observe(cmd, cfg, observability.ModeMCP)
			if err != nil {
				return err
			}

			defer shutdown(providers, &err)

			red, err := observability.NewREDMetrics(providers.Meter)
			if err != nil {
				return err
			}

			runs, err := observability.NewRunMetrics(providers.Meter)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Logger:   providers.Logger,
				Metrics:  red,
				Tracer:   providers.Tracer,
				Recorder: runs,
			})

			return srv.Run(cmd.Context())
		},
	}
}
