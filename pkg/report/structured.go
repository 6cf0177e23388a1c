package report

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
)

const jsonIndent = "  "

// Document is the structured form of an analysis result. Durations are in
// minutes. Non-finite averages serialize as null; absent optionals are omitted.
type Document struct {
	Project       ProjectDocument    `json:"project"                  yaml:"project"`
	ExternalValue *int               `json:"external_value,omitempty" yaml:"external_value,omitempty"`
	Overall       StatisticsDocument `json:"overall"                  yaml:"overall"`
	Axes          []AxisDocument     `json:"axes"                     yaml:"axes"`
}

// ProjectDocument identifies the analyzed project.
type ProjectDocument struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// StatisticsDocument mirrors analysis.TasksStatistics.
type StatisticsDocument struct {
	TaskCount                  int      `json:"task_count"                        yaml:"task_count"`
	TotalEstimatedMinutes      int64    `json:"total_estimated_minutes"           yaml:"total_estimated_minutes"`
	TotalWorkMinutes           int64    `json:"total_work_minutes"                yaml:"total_work_minutes"`
	TotalTimeGapRatio          *float64 `json:"total_time_gap_ratio,omitempty"    yaml:"total_time_gap_ratio,omitempty"`
	WorkDays                   int64    `json:"work_days"                         yaml:"work_days"`
	WorkMinutesPerDay          *float64 `json:"work_minutes_per_day"              yaml:"work_minutes_per_day"`
	WorkMinutesPerDayMax       int64    `json:"work_minutes_per_day_max"          yaml:"work_minutes_per_day_max"`
	WorkMinutesPerDayMin       int64    `json:"work_minutes_per_day_min"          yaml:"work_minutes_per_day_min"`
	WorkMinutesPerDayMedian    int64    `json:"work_minutes_per_day_median"       yaml:"work_minutes_per_day_median"`
	WorkMinutesPerDayDeviation *float64 `json:"work_minutes_per_day_deviation"    yaml:"work_minutes_per_day_deviation"`
	WorkMinutesPerValue        *float64 `json:"work_minutes_per_value,omitempty"  yaml:"work_minutes_per_value,omitempty"`

	Tasks   []TaskDocument `json:"tasks,omitempty"    yaml:"tasks,omitempty"`
	TaskIDs []string       `json:"task_ids,omitempty" yaml:"task_ids,omitempty"`
}

// TaskDocument is one ledger row.
type TaskDocument struct {
	ID               string    `json:"id"                          yaml:"id"`
	Name             string    `json:"name"                        yaml:"name"`
	Group            string    `json:"group,omitempty"             yaml:"group,omitempty"`
	Comment          string    `json:"comment,omitempty"           yaml:"comment,omitempty"`
	BeginTime        time.Time `json:"begin_time"                  yaml:"begin_time"`
	EndTime          time.Time `json:"end_time"                    yaml:"end_time"`
	EstimatedMinutes *int64    `json:"estimated_minutes,omitempty" yaml:"estimated_minutes,omitempty"`
	TimespanMinutes  int64     `json:"timespan_minutes"            yaml:"timespan_minutes"`
	TimeGapRatio     *float64  `json:"time_gap_ratio,omitempty"    yaml:"time_gap_ratio,omitempty"`
}

// AxisDocument holds the labeled statistics of one grouping axis.
type AxisDocument struct {
	Axis   string          `json:"axis"   yaml:"axis"`
	Groups []GroupDocument `json:"groups" yaml:"groups"`
}

// GroupDocument is one labeled bucket.
type GroupDocument struct {
	Label      string             `json:"label"      yaml:"label"`
	Statistics StatisticsDocument `json:"statistics" yaml:"statistics"`
}

// NewDocument converts result. The overall block lists full tasks; groups
// reference tasks by ID.
func NewDocument(result *analysis.AnalysisResult) Document {
	doc := Document{
		Project:       ProjectDocument{ID: result.ProjectID, Name: result.ProjectName},
		ExternalValue: result.ExternalValue,
		Overall:       statisticsDocument(result.Overall),
		Axes:          make([]AxisDocument, 0, len(result.Groups)),
	}

	doc.Overall.Tasks = make([]TaskDocument, 0, len(result.Overall.Tasks))
	for _, t := range result.Overall.Tasks {
		doc.Overall.Tasks = append(doc.Overall.Tasks, taskDocument(t))
	}

	for _, axis := range result.Groups {
		ad := AxisDocument{Axis: axis.Axis, Groups: make([]GroupDocument, 0, len(axis.Groups))}

		for _, g := range axis.Groups {
			sd := statisticsDocument(g.Statistics)
			for _, t := range g.Statistics.Tasks {
				sd.TaskIDs = append(sd.TaskIDs, t.ID)
			}

			ad.Groups = append(ad.Groups, GroupDocument{Label: g.Label, Statistics: sd})
		}

		doc.Axes = append(doc.Axes, ad)
	}

	return doc
}

func statisticsDocument(st analysis.TasksStatistics) StatisticsDocument {
	return StatisticsDocument{
		TaskCount:                  len(st.Tasks),
		TotalEstimatedMinutes:      st.TotalEstimatedTime,
		TotalWorkMinutes:           st.TotalWorkTime,
		TotalTimeGapRatio:          finitePtr(st.TotalTimeGapRatio),
		WorkDays:                   st.WorkDays,
		WorkMinutesPerDay:          finite(st.WorkTimePerDay),
		WorkMinutesPerDayMax:       st.WorkTimePerDayMax,
		WorkMinutesPerDayMin:       st.WorkTimePerDayMin,
		WorkMinutesPerDayMedian:    st.WorkTimePerDayMedian,
		WorkMinutesPerDayDeviation: finite(st.WorkTimePerDayDeviation),
		WorkMinutesPerValue:        finitePtr(st.WorkTimePerValue),
	}
}

func taskDocument(t analysis.AnalyzedTask) TaskDocument {
	td := TaskDocument{
		ID:              t.ID,
		Name:            t.Name,
		Group:           t.Group,
		Comment:         t.Comment,
		BeginTime:       t.BeginTime,
		EndTime:         t.EndTime,
		TimespanMinutes: t.Timespan,
		TimeGapRatio:    finitePtr(t.TimeGapRatio),
	}

	if t.HasEstimate() {
		est := t.EstimatedMinutes()
		td.EstimatedMinutes = &est
	}

	return td
}

// finite returns nil for NaN and ±Inf.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

func finitePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}

	return finite(*v)
}

// RenderJSON serializes result as indented JSON.
func RenderJSON(result *analysis.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, ErrNilResult
	}

	data, err := json.MarshalIndent(NewDocument(result), "", jsonIndent)
	if err != nil {
		return nil, fmt.Errorf("marshal report to JSON: %w", err)
	}

	return append(data, '\n'), nil
}

// RenderYAML serializes result as YAML.
func RenderYAML(result *analysis.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, ErrNilResult
	}

	data, err := yaml.Marshal(NewDocument(result))
	if err != nil {
		return nil, fmt.Errorf("marshal report to YAML: %w", err)
	}

	return data, nil
}
