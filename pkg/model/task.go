// Package model defines the task records consumed by the analysis engine.
package model

import "time"

// Project identifies a TaskChute project. Two projects are equal when their IDs match.
type Project struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Equal reports whether p and other refer to the same project.
func (p Project) Equal(other Project) bool {
	return p.ID == other.ID
}

// Task is a single unit of work from a time-tracking export.
//
// Zero values encode absence: an empty Group or Comment, a zero EstimatedTime,
// zero BeginTime/EndTime and a nil Project all mean "not recorded".
type Task struct {
	ID            string
	Name          string
	Group         string
	Comment       string
	Project       *Project
	EstimatedTime time.Duration
	BeginTime     time.Time
	EndTime       time.Time
}

// HasEstimate reports whether the task carries a positive estimate.
func (t Task) HasEstimate() bool {
	return t.EstimatedTime > 0
}

// Analyzable reports whether both the begin and end timestamps are present.
func (t Task) Analyzable() bool {
	return !t.BeginTime.IsZero() && !t.EndTime.IsZero()
}

// ProjectID returns the ID of the task's project, or "" when it has none.
func (t Task) ProjectID() string {
	if t.Project == nil {
		return ""
	}

	return t.Project.ID
}
