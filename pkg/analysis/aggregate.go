package analysis

import (
	"slices"
	"time"

	"github.com/Sumatoshi-tech/tcc/pkg/alg/stats"
	"github.com/Sumatoshi-tech/tcc/pkg/timespan"
)

const day = 24 * time.Hour

// TasksStatistics summarizes an ordered collection of analyzed tasks.
// All *Time and per-day extremes are in minutes.
//
// Degenerate inputs are not errors: empty collections give zero totals, and
// divisions by zero leave NaN or Inf in the float fields for renderers to
// present as placeholders.
type TasksStatistics struct {
	TotalEstimatedTime int64
	TotalWorkTime      int64
	// TotalTimeGapRatio is nil iff TotalEstimatedTime is zero.
	TotalTimeGapRatio *float64
	// WorkDays is the whole-day span from the first begin to the last end.
	WorkDays int64

	WorkTimePerDay          float64
	WorkTimePerDayMax       int64
	WorkTimePerDayMin       int64
	WorkTimePerDayMedian    int64
	WorkTimePerDayDeviation float64

	// WorkTimePerValue is nil iff no non-zero external value was supplied.
	WorkTimePerValue *float64

	Tasks []AnalyzedTask
}

// Aggregate computes the statistics of tasks, which must already be ordered by
// begin time. externalValue is an optional unit count (e.g. pages) for a
// per-unit work rate.
func Aggregate(tasks []AnalyzedTask, externalValue *int) TasksStatistics {
	spans := make([]int64, len(tasks))
	estimates := make([]int64, len(tasks))

	for i, t := range tasks {
		spans[i] = t.Timespan
		estimates[i] = t.EstimatedMinutes()
	}

	st := TasksStatistics{
		TotalEstimatedTime:   stats.Sum(estimates),
		TotalWorkTime:        stats.Sum(spans),
		WorkDays:             workDays(tasks),
		WorkTimePerDayMax:    stats.Max(spans),
		WorkTimePerDayMin:    stats.Min(spans),
		WorkTimePerDayMedian: stats.UpperMedian(spans),
		Tasks:                slices.Clone(tasks),
	}

	if st.TotalEstimatedTime != 0 {
		ratio := stats.Ratio(st.TotalWorkTime, st.TotalEstimatedTime)
		st.TotalTimeGapRatio = &ratio
	}

	st.WorkTimePerDay = stats.Ratio(st.TotalWorkTime, st.WorkDays)
	st.WorkTimePerDayDeviation = stats.PopulationStdDev(spans, st.WorkTimePerDay)

	if externalValue != nil && *externalValue != 0 {
		perValue := stats.Ratio(st.TotalWorkTime, *externalValue)
		st.WorkTimePerValue = &perValue
	}

	return st
}

// workDays counts whole days between the first task's begin and the last task's
// end. Two tasks on the same day therefore give 0.
func workDays(tasks []AnalyzedTask) int64 {
	if len(tasks) == 0 {
		return 0
	}

	first, last := tasks[0], tasks[len(tasks)-1]

	return int64(wallSpan(first.BeginTime, last.EndTime) / day)
}

// EstimatedSpan returns TotalEstimatedTime as a span.
func (s TasksStatistics) EstimatedSpan() timespan.Span {
	return timespan.Minutes(s.TotalEstimatedTime)
}

// WorkSpan returns TotalWorkTime as a span.
func (s TasksStatistics) WorkSpan() timespan.Span {
	return timespan.Minutes(s.TotalWorkTime)
}

// PerDaySpan returns WorkTimePerDay as an approximate span.
func (s TasksStatistics) PerDaySpan() timespan.Span {
	return timespan.ApproxMinutes(s.WorkTimePerDay)
}

// MaxSpan returns WorkTimePerDayMax as a span.
func (s TasksStatistics) MaxSpan() timespan.Span {
	return timespan.Minutes(s.WorkTimePerDayMax)
}

// MinSpan returns WorkTimePerDayMin as a span.
func (s TasksStatistics) MinSpan() timespan.Span {
	return timespan.Minutes(s.WorkTimePerDayMin)
}

// MedianSpan returns WorkTimePerDayMedian as a span.
func (s TasksStatistics) MedianSpan() timespan.Span {
	return timespan.Minutes(s.WorkTimePerDayMedian)
}

// DeviationSpan returns WorkTimePerDayDeviation as an approximate span.
func (s TasksStatistics) DeviationSpan() timespan.Span {
	return timespan.ApproxMinutes(s.WorkTimePerDayDeviation)
}

// PerValueSpan returns WorkTimePerValue as an approximate span; ok is false when absent.
func (s TasksStatistics) PerValueSpan() (span timespan.Span, ok bool) {
	if s.WorkTimePerValue == nil {
		return timespan.Span{}, false
	}

	return timespan.ApproxMinutes(*s.WorkTimePerValue), true
}
