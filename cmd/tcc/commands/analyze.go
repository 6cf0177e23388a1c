package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
	"github.com/Sumatoshi-tech/tcc/pkg/config"
	"github.com/Sumatoshi-tech/tcc/pkg/observability"
	"github.com/Sumatoshi-tech/tcc/pkg/report"
	"github.com/Sumatoshi-tech/tcc/pkg/report/terminal"
	"github.com/Sumatoshi-tech/tcc/pkg/review"
)

const opAnalyze = "analyze"

// AnalyzeCommand holds the flags of the analyze command.
type AnalyzeCommand struct {
	globals *Globals

	projectID    string
	format       string
	value        int
	holidaysFile string
	noHolidays   bool
	weekends     bool
	location     string
	output       string
	textfile     string
	noColor      bool
	width        int
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(globals *Globals) *cobra.Command {
	ac := &AnalyzeCommand{globals: globals}

	cmd := &cobra.Command{
		Use:   "analyze <export.tsv>",
		Short: "Build the review of one project",
		Long: `Build the review of one project from a TaskChute Cloud TSV export.

The report lists every timed task of the project, the work and estimate
statistics, and breakdowns by workday/holiday, weekday and group tag.`,
		Example: "  tcc analyze export.tsv -p 1234 --value 240 -f text",
		Args:    cobra.ExactArgs(1),
		RunE:    ac.run,
	}

	cmd.Flags().StringVarP(&ac.projectID, "project", "p", "", "Project ID to review (see `tcc project`)")
	cmd.Flags().StringVarP(&ac.format, "format", "f", config.DefaultFormat,
		"Output format: "+strings.Join(report.SupportedFormats(), ", "))
	cmd.Flags().IntVar(&ac.value, "value", 0, "Unit count for the per-value work rate, e.g. pages")
	cmd.Flags().StringVar(&ac.holidaysFile, "holidays", "", "Holiday CSV replacing the built-in table")
	cmd.Flags().BoolVar(&ac.noHolidays, "no-holidays", false, "Treat no date as a public holiday")
	cmd.Flags().BoolVar(&ac.weekends, "weekends", false, "Classify Saturdays and Sundays as holidays")
	cmd.Flags().StringVar(&ac.location, "location", config.DefaultLocation, "IANA time zone of the export timestamps")
	cmd.Flags().StringVarP(&ac.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&ac.textfile, "metrics-textfile", "", "Write Prometheus metrics to this file on exit")
	cmd.Flags().BoolVar(&ac.noColor, "no-color", false, "Disable colored text output")
	cmd.Flags().IntVar(&ac.width, "width", 0, "Text report width (0 = detect from COLUMNS)")

	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func (ac *AnalyzeCommand) run(cmd *cobra.Command, args []string) (err error) {
	cfg, err := ac.globals.loadConfig()
	if err != nil {
		return err
	}

	err = ac.applyFlags(cmd, cfg)
	if err != nil {
		return err
	}

	req, err := ac.request(cmd, cfg, args[0])
	if err != nil {
		return err
	}

	providers, err := ac.globals.observe(cmd, cfg, observability.ModeCLI)
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

	runner := review.NewRunner(
		review.WithLogger(providers.Logger),
		review.WithTracer(providers.Tracer),
		review.WithRecorder(runs),
	)

	ctx := cmd.Context()
	start := time.Now()

	result, err := runner.Run(ctx, req)
	red.Observe(ctx, opAnalyze, start, err)

	if err != nil {
		return err
	}

	if providers.Registry != nil {
		err = observability.RecordReport(providers.Registry, snapshot(result))
		if err != nil {
			return err
		}
	}

	opts := report.Options{Terminal: terminal.NewConfig()}
	if cfg.Output.Width != 0 {
		opts.Terminal.Width = cfg.Output.Width
	}

	if cfg.Output.NoColor {
		opts.Terminal.NoColor = true
	}

	return ac.write(cmd.OutOrStdout(), func(w io.Writer) error {
		return report.Render(w, cfg.Output.Format, result, opts)
	})
}

// applyFlags overrides configuration values with explicitly set flags.
func (ac *AnalyzeCommand) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Output.Format = ac.format
	}

	if flags.Changed("width") {
		cfg.Output.Width = ac.width
	}

	if flags.Changed("no-color") {
		cfg.Output.NoColor = ac.noColor
	}

	if flags.Changed("holidays") {
		cfg.Holidays.File = ac.holidaysFile
	}

	if flags.Changed("no-holidays") {
		cfg.Holidays.Disabled = ac.noHolidays
	}

	if flags.Changed("weekends") {
		cfg.Analysis.Weekends = ac.weekends
	}

	if flags.Changed("location") {
		cfg.Analysis.Location = ac.location
	}

	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = ac.textfile
	}

	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	return nil
}

func (ac *AnalyzeCommand) request(cmd *cobra.Command, cfg *config.Config, file string) (review.Request, error) {
	loc, err := cfg.Analysis.TimeLocation()
	if err != nil {
		return review.Request{}, err
	}

	req := review.Request{
		File:         file,
		ProjectID:    ac.projectID,
		HolidaysFile: cfg.Holidays.File,
		NoHolidays:   cfg.Holidays.Disabled,
		Weekends:     cfg.Analysis.Weekends,
		Location:     loc,
	}

	if cmd.Flags().Changed("value") {
		value := ac.value
		req.Value = &value
	}

	return req, req.Validate()
}

// write sends the rendered report to the output file or to stdout.
func (ac *AnalyzeCommand) write(stdout io.Writer, render func(io.Writer) error) error {
	if ac.output == "" {
		return render(stdout)
	}

	f, err := os.Create(ac.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	err = render(f)
	if err != nil {
		_ = f.Close()

		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	return nil
}

func snapshot(result *analysis.AnalysisResult) observability.ReportSnapshot {
	return observability.ReportSnapshot{
		ProjectID:        result.ProjectID,
		WorkMinutes:      result.Overall.TotalWorkTime,
		EstimatedMinutes: result.Overall.TotalEstimatedTime,
		Tasks:            len(result.Overall.Tasks),
		WorkDays:         result.Overall.WorkDays,
	}
}
