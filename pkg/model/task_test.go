package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTask_Analyzable(t *testing.T) {
	t.Parallel()

	begin := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{name: "both_present", task: Task{BeginTime: begin, EndTime: begin.Add(time.Hour)}, want: true},
		{name: "no_end", task: Task{BeginTime: begin}, want: false},
		{name: "no_begin", task: Task{EndTime: begin}, want: false},
		{name: "neither", task: Task{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.task.Analyzable())
		})
	}
}

func TestTask_ProjectID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Task{}.ProjectID())
	assert.Equal(t, "p1", Task{Project: &Project{ID: "p1", Name: "One"}}.ProjectID())
}

func TestProject_EqualByID(t *testing.T) {
	t.Parallel()

	a := Project{ID: "p1", Name: "Old name"}
	b := Project{ID: "p1", Name: "Renamed"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Project{ID: "p2", Name: "Old name"}))
}

func TestTask_HasEstimate(t *testing.T) {
	t.Parallel()

	assert.False(t, Task{}.HasEstimate())
	assert.True(t, Task{EstimatedTime: 30 * time.Minute}.HasEstimate())
}
