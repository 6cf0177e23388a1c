package analysis

import (
	"time"

	"github.com/Sumatoshi-tech/tcc/pkg/model"
	"github.com/Sumatoshi-tech/tcc/pkg/timespan"
)

// AnalyzedTask is an analyzable task with its derived durations.
// Tasks are ordered by BeginTime and identified by ID.
type AnalyzedTask struct {
	model.Task

	// Timespan is EndTime - BeginTime in whole minutes, truncated toward zero.
	Timespan int64
	// TimeGapRatio is Timespan / estimate; nil when the task has no estimate.
	TimeGapRatio *float64
}

// NewAnalyzedTask derives the computed fields of t. It assumes t.Analyzable().
func NewAnalyzedTask(t model.Task) AnalyzedTask {
	span := minutesOf(wallSpan(t.BeginTime, t.EndTime))

	at := AnalyzedTask{Task: t, Timespan: span}

	if t.HasEstimate() {
		ratio := float64(span) / float64(minutesOf(t.EstimatedTime))
		at.TimeGapRatio = &ratio
	}

	return at
}

// EstimatedMinutes returns the estimate in whole minutes, 0 when absent.
func (at AnalyzedTask) EstimatedMinutes() int64 {
	return minutesOf(at.EstimatedTime)
}

// TimespanSpan returns Timespan as a renderable span.
func (at AnalyzedTask) TimespanSpan() timespan.Span {
	return timespan.Minutes(at.Timespan)
}

func compareBegin(a, b AnalyzedTask) int {
	return a.BeginTime.Compare(b.BeginTime)
}

// wallSpan is end - begin measured on the wall clock of each time's own zone,
// so a daylight-saving shift between them does not count.
func wallSpan(begin, end time.Time) time.Duration {
	return asWallUTC(end).Sub(asWallUTC(begin))
}

func asWallUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	h, mins, sec := t.Clock()

	return time.Date(y, m, d, h, mins, sec, t.Nanosecond(), time.UTC)
}

func minutesOf(d time.Duration) int64 {
	return int64(d / time.Minute)
}
