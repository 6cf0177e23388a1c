// Package review runs the load, analyze pipeline shared by the CLI and the
// MCP server.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
	"github.com/Sumatoshi-tech/tcc/pkg/cache"
	"github.com/Sumatoshi-tech/tcc/pkg/holiday"
	"github.com/Sumatoshi-tech/tcc/pkg/loader"
	"github.com/Sumatoshi-tech/tcc/pkg/model"
)

// Sentinel errors for request validation.
var (
	ErrEmptyFile      = errors.New("export file is required")
	ErrEmptyProjectID = errors.New("project id is required")
	ErrInvalidValue   = errors.New("value must be a positive integer")
)

const spanLoad = "tcc.load"

// Request describes one review.
type Request struct {
	File      string
	ProjectID string
	// Value is the optional unit count behind the per-value rate.
	Value *int

	HolidaysFile string
	NoHolidays   bool
	Weekends     bool

	// Location is the zone export timestamps are read in. Nil means UTC.
	Location *time.Location
}

// Validate checks the request fields that do not need the filesystem.
func (r Request) Validate() error {
	if r.File == "" {
		return ErrEmptyFile
	}

	if r.ProjectID == "" {
		return ErrEmptyProjectID
	}

	if r.Value != nil && *r.Value <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidValue, *r.Value)
	}

	return nil
}

// ExportKey identifies one parsed version of an export file.
type ExportKey struct {
	Path     string
	Size     int64
	ModTime  int64
	Location string
}

// ExportCache holds parsed exports, sized by their file length.
type ExportCache = cache.LRU[ExportKey, []model.Task]

// NewExportCache creates an ExportCache with the given byte budget.
func NewExportCache(maxSize int64) *ExportCache {
	return cache.NewLRU[ExportKey, []model.Task](maxSize)
}

// Runner loads exports and analyzes them.
type Runner struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	recorder analysis.RunRecorder
	exports  *ExportCache
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger handed to the loader and the analyzer.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets the tracer for load and analysis spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runner) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithRecorder sets the per-run metrics sink.
func WithRecorder(rec analysis.RunRecorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithCache reuses parsed exports across Load calls while the file is unchanged.
func WithCache(c *ExportCache) Option {
	return func(r *Runner) {
		r.exports = c
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer(""),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Load parses the export at path.
func (r *Runner) Load(ctx context.Context, path string, loc *time.Location) ([]model.Task, error) {
	if path == "" {
		return nil, ErrEmptyFile
	}

	if loc == nil {
		loc = time.UTC
	}

	_, span := r.tracer.Start(ctx, spanLoad, trace.WithAttributes(attribute.String("tcc.file", path)))
	defer span.End()

	key, cacheable := r.exportKey(path, loc)
	if cacheable {
		if tasks, ok := r.exports.Get(key); ok {
			span.SetAttributes(attribute.Bool("tcc.cache.hit", true), attribute.Int("tcc.tasks.loaded", len(tasks)))
			r.logger.DebugContext(ctx, "export cache hit",
				"file", path, "tasks", len(tasks), "hit_rate", r.exports.Stats().HitRate())

			return slices.Clone(tasks), nil
		}
	}

	parser := loader.NewParser(loader.WithLogger(r.logger), loader.WithLocation(loc))

	tasks, err := parser.LoadFile(path)
	if err != nil {
		span.RecordError(err)

		return nil, err
	}

	span.SetAttributes(attribute.Int("tcc.tasks.loaded", len(tasks)))

	if cacheable {
		r.exports.Put(key, slices.Clone(tasks), key.Size)
		r.logger.DebugContext(ctx, "export cache miss",
			"file", path, "tasks", len(tasks), "hit_rate", r.exports.Stats().HitRate())
	}

	return tasks, nil
}

// exportKey stats path for the cache. It reports false without a cache or
// when the file cannot be inspected; LoadFile then reports the failure.
func (r *Runner) exportKey(path string, loc *time.Location) (ExportKey, bool) {
	if r.exports == nil {
		return ExportKey{}, false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return ExportKey{}, false
	}

	info, err := os.Stat(abs)
	if err != nil {
		return ExportKey{}, false
	}

	return ExportKey{
		Path:     abs,
		Size:     info.Size(),
		ModTime:  info.ModTime().UnixNano(),
		Location: loc.String(),
	}, true
}

// Run validates req, loads its export and analyzes the requested project.
func (r *Runner) Run(ctx context.Context, req Request) (*analysis.AnalysisResult, error) {
	err := req.Validate()
	if err != nil {
		return nil, err
	}

	lookup, err := holiday.Select(req.HolidaysFile, req.NoHolidays)
	if err != nil {
		return nil, err
	}

	tasks, err := r.Load(ctx, req.File, req.Location)
	if err != nil {
		return nil, err
	}

	var workday []analysis.WorkdayOption
	if req.Weekends {
		workday = append(workday, analysis.WithWeekendsAsHolidays())
	}

	analyzer := analysis.NewAnalyzer(
		analysis.WithAxes(analysis.DefaultAxes(lookup, workday...)...),
		analysis.WithLogger(r.logger),
		analysis.WithTracer(r.tracer),
		analysis.WithRecorder(r.recorder),
	)

	return analyzer.Analyze(ctx, tasks, req.ProjectID, req.Value)
}
