package analysis

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/tcc/pkg/model"
)

// ErrProjectNotFound is returned when no task references the requested project.
var ErrProjectNotFound = errors.New("project not found")

// Predicate selects tasks.
type Predicate func(model.Task) bool

// BelongsToProject matches tasks whose project ID equals id. Tasks without a
// project never match.
func BelongsToProject(id string) Predicate {
	return func(t model.Task) bool {
		return t.Project != nil && t.Project.ID == id
	}
}

// IsAnalyzable matches tasks with both timestamps present.
func IsAnalyzable(t model.Task) bool {
	return t.Analyzable()
}

// All matches tasks accepted by every predicate.
func All(preds ...Predicate) Predicate {
	return func(t model.Task) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}

		return true
	}
}

// Filter keeps the analyzable tasks of one project, ordered by begin time.
// Equal begin times keep their input order. An empty result is not an error.
func Filter(tasks []model.Task, projectID string) []AnalyzedTask {
	keep := All(BelongsToProject(projectID), IsAnalyzable)

	var out []AnalyzedTask

	for _, t := range tasks {
		if keep(t) {
			out = append(out, NewAnalyzedTask(t))
		}
	}

	slices.SortStableFunc(out, compareBegin)

	return out
}

// ProjectName returns the name carried by the first task, in input order, that
// references projectID. Timestamps are not required.
func ProjectName(tasks []model.Task, projectID string) (string, error) {
	match := BelongsToProject(projectID)

	for _, t := range tasks {
		if match(t) {
			return t.Project.Name, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
}

// Projects lists the distinct projects referenced by tasks in first-appearance order.
func Projects(tasks []model.Task) []model.Project {
	seen := make(map[string]struct{})

	var out []model.Project

	for _, t := range tasks {
		if t.Project == nil {
			continue
		}

		if _, ok := seen[t.Project.ID]; ok {
			continue
		}

		seen[t.Project.ID] = struct{}{}
		out = append(out, *t.Project)
	}

	return out
}
