package review

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
)

const exportFile = "testdata/export.tsv"

type countingRecorder struct {
	runs  int
	tasks int
}

func (c *countingRecorder) RecordRun(_ context.Context, _ string, analyzed int) {
	c.runs++
	c.tasks += analyzed
}

func intPtr(v int) *int { return &v }

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"ok", Request{File: exportFile, ProjectID: "p1"}, nil},
		{"ok with value", Request{File: exportFile, ProjectID: "p1", Value: intPtr(3)}, nil},
		{"no file", Request{ProjectID: "p1"}, ErrEmptyFile},
		{"no project", Request{File: exportFile}, ErrEmptyProjectID},
		{"zero value", Request{File: exportFile, ProjectID: "p1", Value: intPtr(0)}, ErrInvalidValue},
		{"negative value", Request{File: exportFile, ProjectID: "p1", Value: intPtr(-2)}, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.req.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	runner := NewRunner(WithRecorder(rec))

	result, err := runner.Run(context.Background(), Request{
		File:      exportFile,
		ProjectID: "p1",
		Value:     intPtr(3),
	})
	require.NoError(t, err)

	assert.Equal(t, "技術書", result.ProjectName)
	require.NotNil(t, result.ExternalValue)
	assert.Equal(t, 3, *result.ExternalValue)
	assert.Len(t, result.Overall.Tasks, 3)
	assert.Len(t, result.Groups, 3)
	assert.Equal(t, 1, rec.runs)
	assert.Equal(t, 3, rec.tasks)
}

func TestRunner_Run_UnknownProject(t *testing.T) {
	t.Parallel()

	_, err := NewRunner().Run(context.Background(), Request{File: exportFile, ProjectID: "nope"})

	require.ErrorIs(t, err, analysis.ErrProjectNotFound)
}

func TestRunner_Run_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewRunner().Run(context.Background(), Request{File: "testdata/missing.tsv", ProjectID: "p1"})

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunner_Run_HolidayFile(t *testing.T) {
	t.Parallel()

	// 2025-01-06 carries t1 and t2; declaring it a holiday moves them.
	path := filepath.Join(t.TempDir(), "holidays.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,name\n2025-01-06,Day off\n"), 0o600))

	result, err := NewRunner().Run(context.Background(), Request{
		File:         exportFile,
		ProjectID:    "p1",
		HolidaysFile: path,
	})
	require.NoError(t, err)

	axis, ok := result.Axis(analysis.AxisWorkday)
	require.True(t, ok)

	holidayStats, ok := axis.Lookup(analysis.LabelHoliday)
	require.True(t, ok)
	assert.Len(t, holidayStats.Tasks, 2)
}

func TestRunner_Load_Location(t *testing.T) {
	t.Parallel()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tasks, err := NewRunner().Load(context.Background(), exportFile, tokyo)
	require.NoError(t, err)
	require.NotEmpty(t, tasks)

	assert.Equal(t, tokyo, tasks[0].BeginTime.Location())
}

func TestRunner_Load_Cache(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(exportFile)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.tsv")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	var logs bytes.Buffer

	exports := NewExportCache(0)
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	runner := NewRunner(WithCache(exports), WithLogger(logger))

	first, err := runner.Load(context.Background(), path, nil)
	require.NoError(t, err)

	second, err := runner.Load(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Len(t, second, len(first))

	stats := exports.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(len(data)), stats.CurrentSize)
	assert.Contains(t, logs.String(), `"msg":"export cache hit"`)
	assert.Contains(t, logs.String(), `"hit_rate":0.5`)

	// A different zone is a different parse.
	_, err = runner.Load(context.Background(), path, time.FixedZone("JST", 9*60*60))
	require.NoError(t, err)
	assert.Equal(t, 2, exports.Stats().Entries)
}
