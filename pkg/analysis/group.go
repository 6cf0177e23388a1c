package analysis

import (
	"time"

	"github.com/Sumatoshi-tech/tcc/pkg/holiday"
)

// LabelAll names the bucket holding every task of an axis.
const LabelAll = "all"

// Workday axis labels.
const (
	LabelWorkday = "workday"
	LabelHoliday = "holiday"
)

// LabelUntagged is the tag axis bucket for tasks without a group.
const LabelUntagged = "(none)"

// Axis names.
const (
	AxisWorkday = "workday"
	AxisWeekday = "weekday"
	AxisTag     = "tag"
)

// Axis partitions tasks into labeled buckets.
type Axis interface {
	// Name identifies the axis in reports.
	Name() string
	// Labels lists the buckets reported even when no task falls into them.
	Labels() []string
	// Classify returns the bucket label for t.
	Classify(t AnalyzedTask) string
}

// WorkdayOption configures WorkdayAxis.
type WorkdayOption func(*workdayAxis)

// WithWeekendsAsHolidays also classifies Saturdays and Sundays as holidays.
func WithWeekendsAsHolidays() WorkdayOption {
	return func(a *workdayAxis) {
		a.weekends = true
	}
}

type workdayAxis struct {
	lookup   holiday.Lookup
	weekends bool
}

// WorkdayAxis splits tasks by whether their begin date is a holiday in lookup.
// A nil lookup treats every date as a workday.
func WorkdayAxis(lookup holiday.Lookup, opts ...WorkdayOption) Axis {
	if lookup == nil {
		lookup = holiday.Empty()
	}

	a := &workdayAxis{lookup: lookup}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *workdayAxis) Name() string { return AxisWorkday }

func (a *workdayAxis) Labels() []string { return []string{LabelWorkday, LabelHoliday} }

func (a *workdayAxis) Classify(t AnalyzedTask) string {
	date := t.BeginTime

	if a.weekends {
		wd := date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			return LabelHoliday
		}
	}

	if _, ok := a.lookup.Holiday(date); ok {
		return LabelHoliday
	}

	return LabelWorkday
}

// weekdayOrder starts the week on Monday.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

const weekdayAbbrevLen = 3

type weekdayAxis struct{}

// WeekdayAxis buckets tasks by the weekday of their begin time (Mon..Sun).
func WeekdayAxis() Axis {
	return weekdayAxis{}
}

func (weekdayAxis) Name() string { return AxisWeekday }

func (weekdayAxis) Labels() []string {
	labels := make([]string, len(weekdayOrder))
	for i, wd := range weekdayOrder {
		labels[i] = weekdayLabel(wd)
	}

	return labels
}

func (weekdayAxis) Classify(t AnalyzedTask) string {
	return weekdayLabel(t.BeginTime.Weekday())
}

func weekdayLabel(wd time.Weekday) string {
	return wd.String()[:weekdayAbbrevLen]
}

type tagAxis struct{}

// TagAxis buckets tasks by their free-text group tag.
func TagAxis() Axis {
	return tagAxis{}
}

func (tagAxis) Name() string { return AxisTag }

func (tagAxis) Labels() []string { return nil }

func (tagAxis) Classify(t AnalyzedTask) string {
	if t.Group == "" {
		return LabelUntagged
	}

	return t.Group
}

// Bucket is one labeled partition of a task collection.
type Bucket struct {
	Label string
	Tasks []AnalyzedTask
}

// GroupBy partitions tasks along axis. Buckets appear in first-appearance order of
// their label among tasks, followed by the axis' fixed labels that received no task.
// Each bucket keeps the input order.
func GroupBy(tasks []AnalyzedTask, axis Axis) []Bucket {
	index := make(map[string]int)

	var buckets []Bucket

	for _, t := range tasks {
		label := axis.Classify(t)

		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, Bucket{Label: label})
		}

		buckets[i].Tasks = append(buckets[i].Tasks, t)
	}

	for _, label := range axis.Labels() {
		if _, ok := index[label]; ok {
			continue
		}

		index[label] = len(buckets)
		buckets = append(buckets, Bucket{Label: label})
	}

	return buckets
}

// LabeledStatistics pairs a bucket label with its statistics.
type LabeledStatistics struct {
	Label      string
	Statistics TasksStatistics
}

// AxisStatistics holds the per-bucket statistics of one axis, "all" first.
type AxisStatistics struct {
	Axis   string
	Groups []LabeledStatistics
}

// Lookup returns the statistics for label.
func (a AxisStatistics) Lookup(label string) (TasksStatistics, bool) {
	for _, g := range a.Groups {
		if g.Label == label {
			return g.Statistics, true
		}
	}

	return TasksStatistics{}, false
}

// AggregateAxis aggregates the whole collection under LabelAll and each bucket of axis.
func AggregateAxis(tasks []AnalyzedTask, axis Axis, externalValue *int) AxisStatistics {
	buckets := GroupBy(tasks, axis)

	groups := make([]LabeledStatistics, 0, len(buckets)+1)
	groups = append(groups, LabeledStatistics{Label: LabelAll, Statistics: Aggregate(tasks, externalValue)})

	for _, b := range buckets {
		groups = append(groups, LabeledStatistics{Label: b.Label, Statistics: Aggregate(b.Tasks, externalValue)})
	}

	return AxisStatistics{Axis: axis.Name(), Groups: groups}
}
