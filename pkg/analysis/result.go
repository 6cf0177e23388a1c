package analysis

// AnalysisResult is the complete report for one project.
type AnalysisResult struct {
	ProjectID   string
	ProjectName string
	// ExternalValue is the caller-supplied unit count, nil when not given.
	ExternalValue *int
	Overall       TasksStatistics
	Groups        []AxisStatistics
}

// Assemble combines the pieces of an analysis into one result.
func Assemble(
	projectID, projectName string,
	externalValue *int,
	overall TasksStatistics,
	groups []AxisStatistics,
) *AnalysisResult {
	var value *int

	if externalValue != nil {
		v := *externalValue
		value = &v
	}

	return &AnalysisResult{
		ProjectID:     projectID,
		ProjectName:   projectName,
		ExternalValue: value,
		Overall:       overall,
		Groups:        groups,
	}
}

// Axis returns the statistics of the named axis.
func (r *AnalysisResult) Axis(name string) (AxisStatistics, bool) {
	for _, g := range r.Groups {
		if g.Axis == name {
			return g, true
		}
	}

	return AxisStatistics{}, false
}
