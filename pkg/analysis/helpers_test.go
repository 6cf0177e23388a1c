package analysis

import (
	"time"

	"github.com/Sumatoshi-tech/tcc/pkg/model"
)

var (
	projA = &model.Project{ID: "p1", Name: "Alpha"}
	projB = &model.Project{ID: "p2", Name: "Beta"}
)

// at builds a UTC timestamp on the given day of January 2025.
func at(dayOfMonth, hour, minute int) time.Time {
	return time.Date(2025, time.January, dayOfMonth, hour, minute, 0, 0, time.UTC)
}

func newTask(id string, p *model.Project, begin time.Time, minutes int, estimate time.Duration) model.Task {
	return model.Task{
		ID:            id,
		Name:          "task " + id,
		Project:       p,
		EstimatedTime: estimate,
		BeginTime:     begin,
		EndTime:       begin.Add(time.Duration(minutes) * time.Minute),
	}
}

func analyzedOf(tasks ...model.Task) []AnalyzedTask {
	out := make([]AnalyzedTask, len(tasks))
	for i, t := range tasks {
		out[i] = NewAnalyzedTask(t)
	}

	return out
}

func ids(tasks []AnalyzedTask) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}

	return out
}

func intPtr(v int) *int {
	return &v
}
