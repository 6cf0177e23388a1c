// Package main provides the entry point for the tcc CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/tcc/cmd/tcc/commands"
	"github.com/Sumatoshi-tech/tcc/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	globals := &commands.Globals{}

	rootCmd := &cobra.Command{
		Use:   "tcc",
		Short: "tcc - TaskChute Cloud review",
		Long: `tcc turns TaskChute Cloud TSV exports into project reviews.

Commands:
  project   List the projects of an export
  analyze   Build the review of one project
  validate  Check a JSON report against the report schema
  mcp       Serve the tools over the Model Context Protocol`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	globals.Register(rootCmd)

	rootCmd.AddCommand(commands.NewProjectCommand(globals))
	rootCmd.AddCommand(commands.NewAnalyzeCommand(globals))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewMCPCommand(globals))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tcc %s\n", version.Get())
		},
	}
}
