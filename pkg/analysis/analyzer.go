package analysis

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/tcc/pkg/holiday"
	"github.com/Sumatoshi-tech/tcc/pkg/model"
)

const (
	tracerName   = "tcc/analysis"
	spanAnalyze  = "tcc.analyze"
	attrProject  = "tcc.project_id"
	attrInput    = "tcc.tasks.input"
	attrAnalyzed = "tcc.tasks.analyzed"
)

// RunRecorder receives one record per successful analysis.
type RunRecorder interface {
	RecordRun(ctx context.Context, projectID string, analyzedTasks int)
}

// Analyzer runs the full pipeline for a project.
type Analyzer struct {
	axes     []Axis
	logger   *slog.Logger
	tracer   trace.Tracer
	recorder RunRecorder
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithAxes replaces the default grouping axes.
func WithAxes(axes ...Axis) Option {
	return func(a *Analyzer) {
		a.axes = axes
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithTracer sets the tracer used for the analysis span.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Analyzer) {
		if tracer != nil {
			a.tracer = tracer
		}
	}
}

// WithRecorder sets the run recorder.
func WithRecorder(r RunRecorder) Option {
	return func(a *Analyzer) {
		a.recorder = r
	}
}

// DefaultAxes returns the workday, weekday and tag axes.
func DefaultAxes(lookup holiday.Lookup, opts ...WorkdayOption) []Axis {
	return []Axis{WorkdayAxis(lookup, opts...), WeekdayAxis(), TagAxis()}
}

// NewAnalyzer creates an Analyzer. Without WithAxes it uses DefaultAxes over an
// empty holiday table.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		axes:   DefaultAxes(holiday.Empty()),
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze builds the report of projectID over tasks. It fails with
// ErrProjectNotFound, before any aggregation, when no task references the project.
func (a *Analyzer) Analyze(
	ctx context.Context,
	tasks []model.Task,
	projectID string,
	externalValue *int,
) (*AnalysisResult, error) {
	ctx, span := a.tracer.Start(ctx, spanAnalyze,
		trace.WithAttributes(
			attribute.String(attrProject, projectID),
			attribute.Int(attrInput, len(tasks)),
		),
	)
	defer span.End()

	name, err := ProjectName(tasks, projectID)
	if err != nil {
		span.RecordError(err)

		return nil, err
	}

	analyzed := Filter(tasks, projectID)
	span.SetAttributes(attribute.Int(attrAnalyzed, len(analyzed)))

	overall := Aggregate(analyzed, externalValue)

	groups := make([]AxisStatistics, 0, len(a.axes))
	for _, axis := range a.axes {
		groups = append(groups, AggregateAxis(analyzed, axis, externalValue))
	}

	a.logger.InfoContext(ctx, "analysis complete",
		"project", projectID,
		"tasks", len(tasks),
		"analyzed", len(analyzed),
		"axes", len(a.axes),
	)

	if a.recorder != nil {
		a.recorder.RecordRun(ctx, projectID, len(analyzed))
	}

	return Assemble(projectID, name, externalValue, overall, groups), nil
}
