package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
	"github.com/Sumatoshi-tech/tcc/pkg/observability"
	"github.com/Sumatoshi-tech/tcc/pkg/review"
)

const opProject = "project"

// NewProjectCommand creates the project command.
func NewProjectCommand(globals *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "project <export.tsv>",
		Short: "List the projects of an export",
		Long:  "List the distinct projects referenced by a TaskChute Cloud TSV export, one \"<id> - <name>\" per line.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := globals.loadConfig()
			if err != nil {
				return err
			}

			loc, err := cfg.Analysis.TimeLocation()
			if err != nil {
				return err
			}

			providers, err := globals.observe(cmd, cfg, observability.ModeCLI)
			if err != nil {
				return err
			}

			defer shutdown(providers, &err)

			red, err := observability.NewREDMetrics(providers.Meter)
			if err != nil {
				return err
			}

			runner := review.NewRunner(review.WithLogger(providers.Logger), review.WithTracer(providers.Tracer))

			ctx := cmd.Context()
			start := time.Now()

			tasks, err := runner.Load(ctx, args[0], loc)
			red.Observe(ctx, opProject, start, err)

			if err != nil {
				return err
			}

			for _, p := range analysis.Projects(tasks) {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s - %s\n", p.ID, p.Name)
				if err != nil {
					return fmt.Errorf("write projects: %w", err)
				}
			}

			return nil
		},
	}
}
