package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRunsTotal  = "tcc.analysis.runs.total"
	metricTasksTotal = "tcc.analysis.tasks.total"

	attrProject = "project"
)

// RunMetrics holds OTel instruments for completed analyses. It satisfies the
// analysis package's RunRecorder.
type RunMetrics struct {
	runsTotal  metric.Int64Counter
	tasksTotal metric.Int64Counter
}

// NewRunMetrics creates analysis run instruments from the given meter.
func NewRunMetrics(mt metric.Meter) (*RunMetrics, error) {
	runs, err := mt.Int64Counter(metricRunsTotal,
		metric.WithDescription("Total completed analyses"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunsTotal, err)
	}

	tasks, err := mt.Int64Counter(metricTasksTotal,
		metric.WithDescription("Total analyzable tasks aggregated"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricTasksTotal, err)
	}

	return &RunMetrics{runsTotal: runs, tasksTotal: tasks}, nil
}

// RecordRun records one completed analysis of projectID.
// Safe to call on a nil receiver (no-op).
func (rm *RunMetrics) RecordRun(ctx context.Context, projectID string, analyzedTasks int) {
	if rm == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrProject, projectID))

	rm.runsTotal.Add(ctx, 1, attrs)
	rm.tasksTotal.Add(ctx, int64(analyzedTasks), attrs)
}
