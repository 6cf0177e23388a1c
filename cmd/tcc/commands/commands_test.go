package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/tcc/cmd/tcc/commands"
	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
	"github.com/Sumatoshi-tech/tcc/pkg/config"
	"github.com/Sumatoshi-tech/tcc/pkg/report"
	"github.com/Sumatoshi-tech/tcc/pkg/review"
)

const exportFile = "testdata/export.tsv"

type outcome struct {
	stdout string
	stderr string
	err    error
}

// execute runs args against a fresh command tree with an isolated config file.
func execute(t *testing.T, stdin string, args ...string) outcome {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "tcc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: warn\n"), 0o600))

	globals := &commands.Globals{}
	root := &cobra.Command{Use: "tcc", SilenceUsage: true, SilenceErrors: true}
	globals.Register(root)
	root.AddCommand(
		commands.NewProjectCommand(globals),
		commands.NewAnalyzeCommand(globals),
		commands.NewValidateCommand(),
		commands.NewMCPCommand(globals),
	)

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.Execute()

	return outcome{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestProjectCommand_ListsProjects(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "project", exportFile)

	require.NoError(t, out.err)
	assert.Equal(t, "p1 - 技術書\np2 - 社内\n", out.stdout)
}

func TestProjectCommand_MissingFile(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "project", "testdata/missing.tsv")

	require.ErrorIs(t, out.err, os.ErrNotExist)
}

func TestAnalyzeCommand_Markdown(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "analyze", exportFile, "-p", "p1")

	require.NoError(t, out.err)
	assert.True(t, strings.HasPrefix(out.stdout, "# Review - 技術書\n"))
	assert.Contains(t, out.stdout, "原稿執筆")
}

func TestAnalyzeCommand_JSONMatchesSchema(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "analyze", exportFile, "-p", "p1", "-f", "json", "--value", "3")

	require.NoError(t, out.err)
	require.NoError(t, report.ValidateJSON([]byte(out.stdout)))

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(out.stdout), &doc))

	assert.Equal(t, "技術書", doc.Project.Name)
	require.NotNil(t, doc.ExternalValue)
	assert.Equal(t, 3, *doc.ExternalValue)
	assert.Equal(t, 3, doc.Overall.TaskCount)
	assert.Equal(t, int64(285), doc.Overall.TotalWorkMinutes)
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown project", []string{"-p", "p9"}, analysis.ErrProjectNotFound},
		{"zero value", []string{"-p", "p1", "--value", "0"}, review.ErrInvalidValue},
		{"bad format", []string{"-p", "p1", "-f", "pdf"}, config.ErrInvalidFormat},
		{"bad location", []string{"-p", "p1", "--location", "Mars/Olympus"}, config.ErrInvalidLocation},
		{"holiday conflict", []string{"-p", "p1", "--holidays", "h.csv", "--no-holidays"}, config.ErrHolidayConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := execute(t, "", append([]string{"analyze", exportFile}, tt.args...)...)

			require.ErrorIs(t, out.err, tt.wantErr)
			assert.Empty(t, out.stdout)
		})
	}
}

func TestAnalyzeCommand_ProjectNotFoundMessage(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "analyze", exportFile, "-p", "p9")

	require.Error(t, out.err)
	assert.Equal(t, "project not found: p9", out.err.Error())
}

func TestAnalyzeCommand_RequiresProject(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "analyze", exportFile)

	require.Error(t, out.err)
	assert.Contains(t, out.err.Error(), "project")
}

func TestAnalyzeCommand_OutputFileAndTextfile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	reportPath := filepath.Join(dir, "review.yaml")
	promPath := filepath.Join(dir, "tcc.prom")

	out := execute(t, "", "analyze", exportFile, "-p", "p1", "-f", "yaml",
		"-o", reportPath, "--metrics-textfile", promPath)

	require.NoError(t, out.err)
	assert.Empty(t, out.stdout)

	written, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "name: 技術書")

	metrics, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `tcc_report_work_minutes{project="p1"} 285`)
	assert.Contains(t, string(metrics), `tcc_report_tasks{project="p1"} 3`)
}

func TestAnalyzeCommand_TextFormat(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "analyze", exportFile, "-p", "p1", "-f", "text", "--no-color", "--width", "100")

	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "技術書")
	assert.Contains(t, out.stdout, "3 tasks")
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	generated := execute(t, "", "analyze", exportFile, "-p", "p1", "-f", "json")
	require.NoError(t, generated.err)

	path := filepath.Join(t.TempDir(), "review.json")
	require.NoError(t, os.WriteFile(path, []byte(generated.stdout), 0o600))

	out := execute(t, "", "validate", path)
	require.NoError(t, out.err)
	assert.Equal(t, path+": ok\n", out.stdout)

	out = execute(t, generated.stdout, "validate", "-")
	require.NoError(t, out.err)

	out = execute(t, `{"project": {"id": 1}}`, "validate", "-")
	require.ErrorIs(t, out.err, report.ErrSchemaViolation)

	out = execute(t, "", "validate")
	require.Error(t, out.err)
}

func TestValidateCommand_PrintsSchema(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "validate", "--schema")

	require.NoError(t, out.err)
	assert.JSONEq(t, string(report.Schema()), out.stdout)
}

func TestMCPCommand_Exists(t *testing.T) {
	t.Parallel()

	cmd := commands.NewMCPCommand(&commands.Globals{})
	require.NotNil(t, cmd)
	assert.Equal(t, "mcp", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Contains(t, cmd.Long, "tcc_analyze")
}
