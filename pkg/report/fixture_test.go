package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
	"github.com/Sumatoshi-tech/tcc/pkg/holiday"
	"github.com/Sumatoshi-tech/tcc/pkg/model"
)

var book = &model.Project{ID: "p1", Name: "技術書"}

func jan(day, hour, minute int) time.Time {
	return time.Date(2025, time.January, day, hour, minute, 0, 0, time.UTC)
}

func task(id, name string, begin time.Time, minutes int, estimate time.Duration) model.Task {
	return model.Task{
		ID:            id,
		Name:          name,
		Project:       book,
		EstimatedTime: estimate,
		BeginTime:     begin,
		EndTime:       begin.Add(time.Duration(minutes) * time.Minute),
	}
}

func analyze(t *testing.T, tasks []model.Task, value *int) *analysis.AnalysisResult {
	t.Helper()

	holidays := holiday.Empty()
	holidays.Add(jan(13, 0, 0), "成人の日")

	result, err := analysis.NewAnalyzer(
		analysis.WithAxes(analysis.DefaultAxes(holidays)...),
	).Analyze(context.Background(), tasks, book.ID, value)
	require.NoError(t, err)

	return result
}

func sampleResult(t *testing.T) *analysis.AnalysisResult {
	t.Helper()

	writing := task("t1", "原稿執筆", jan(6, 9, 0), 90, time.Hour)
	writing.Comment = "序章"
	writing.Group = "執筆"

	value := 3

	return analyze(t, []model.Task{
		writing,
		task("t2", "校正", jan(7, 11, 0), 45, 0),
		task("t3", "図版", jan(13, 10, 0), 30, 30*time.Minute),
	}, &value)
}

func sameDayResult(t *testing.T) *analysis.AnalysisResult {
	t.Helper()

	return analyze(t, []model.Task{
		task("a", "a", jan(6, 9, 0), 30, 0),
		task("b", "b", jan(6, 10, 0), 30, 0),
	}, nil)
}
