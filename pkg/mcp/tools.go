package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
	"github.com/Sumatoshi-tech/tcc/pkg/config"
	"github.com/Sumatoshi-tech/tcc/pkg/model"
	"github.com/Sumatoshi-tech/tcc/pkg/report"
	"github.com/Sumatoshi-tech/tcc/pkg/report/terminal"
	"github.com/Sumatoshi-tech/tcc/pkg/review"
)

// Tool name constants.
const (
	ToolNameProjects = "tcc_projects"
	ToolNameAnalyze  = "tcc_analyze"
)

// MaxFileBytes is the largest export the tools accept (32 MB).
const MaxFileBytes = 32 << 20

// defaultToolFormat is the report format when the caller names none.
const defaultToolFormat = report.FormatJSON

// Sentinel errors for tool input validation.
var (
	// ErrFileNotAbsolute indicates the file path is relative.
	ErrFileNotAbsolute = errors.New("file must be an absolute path")
	// ErrFileTooLarge indicates the export exceeds MaxFileBytes.
	ErrFileTooLarge = errors.New("export file exceeds maximum size")
	// ErrNotRegularFile indicates the path names a directory or device.
	ErrNotRegularFile = errors.New("file is not a regular file")
)

// Input types (auto-generate JSON schemas via struct tags).

// ProjectsInput is the input schema for the tcc_projects tool.
type ProjectsInput struct {
	File string `json:"file" jsonschema:"absolute path to a TaskChute Cloud TSV export"`
}

// AnalyzeInput is the input schema for the tcc_analyze tool.
type AnalyzeInput struct {
	File         string `json:"file"                    jsonschema:"absolute path to a TaskChute Cloud TSV export"`
	Format       string `json:"format,omitempty"        jsonschema:"report format: json yaml markdown text or plot (default json)"`
	HolidaysFile string `json:"holidays_file,omitempty" jsonschema:"optional absolute path to a holiday CSV replacing the built-in table"`
	Location     string `json:"location,omitempty"      jsonschema:"optional IANA time zone of the export timestamps (default UTC)"`
	NoHolidays   bool   `json:"no_holidays,omitempty"   jsonschema:"treat no date as a public holiday"`
	ProjectID    string `json:"project_id"              jsonschema:"id of the project to review"`
	Value        *int   `json:"value,omitempty"         jsonschema:"optional positive unit count for the per-value work rate"`
	Weekends     bool   `json:"weekends,omitempty"      jsonschema:"classify Saturdays and Sundays as holidays"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// handleProjects processes tcc_projects tool calls.
func (s *Server) handleProjects(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input ProjectsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateFile(input.File)
	if err != nil {
		return errorResult(err)
	}

	tasks, err := s.runner().Load(ctx, input.File, nil)
	if err != nil {
		return errorResult(err)
	}

	projects := projectsOf(tasks)

	return jsonResult(projects)
}

// handleAnalyze processes tcc_analyze tool calls.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input AnalyzeInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	req, format, err := analyzeRequest(input)
	if err != nil {
		return errorResult(err)
	}

	result, err := s.runner().Run(ctx, req)
	if err != nil {
		return errorResult(err)
	}

	var buf bytes.Buffer

	err = report.Render(&buf, format, result, report.Options{Terminal: terminal.Config{NoColor: true}})
	if err != nil {
		return errorResult(fmt.Errorf("render report: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: buf.String()},
		},
	}, ToolOutput{Data: report.NewDocument(result)}, nil
}

func (s *Server) runner() *review.Runner {
	return review.NewRunner(
		review.WithLogger(s.logger),
		review.WithTracer(s.tracer),
		review.WithRecorder(s.recorder),
		review.WithCache(s.exports),
	)
}

// analyzeRequest converts tool input into a review request and a canonical format.
func analyzeRequest(input AnalyzeInput) (review.Request, string, error) {
	err := validateFile(input.File)
	if err != nil {
		return review.Request{}, "", err
	}

	if input.HolidaysFile != "" && !filepath.IsAbs(input.HolidaysFile) {
		return review.Request{}, "", fmt.Errorf("holidays_file: %w", ErrFileNotAbsolute)
	}

	format := input.Format
	if format == "" {
		format = defaultToolFormat
	}

	format, err = report.ValidateFormat(format)
	if err != nil {
		return review.Request{}, "", err
	}

	req := review.Request{
		File:         input.File,
		ProjectID:    input.ProjectID,
		Value:        input.Value,
		HolidaysFile: input.HolidaysFile,
		NoHolidays:   input.NoHolidays,
		Weekends:     input.Weekends,
	}

	if input.Location != "" {
		loc, locErr := config.AnalysisConfig{Location: input.Location}.TimeLocation()
		if locErr != nil {
			return review.Request{}, "", locErr
		}

		req.Location = loc
	}

	err = req.Validate()
	if err != nil {
		return review.Request{}, "", err
	}

	return req, format, nil
}

// validateFile checks that path is an absolute, regular, reasonably sized file.
func validateFile(path string) error {
	if path == "" {
		return review.ErrEmptyFile
	}

	if !filepath.IsAbs(path) {
		return ErrFileNotAbsolute
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat export: %w", err)
	}

	if !info.Mode().IsRegular() {
		return ErrNotRegularFile
	}

	if info.Size() > MaxFileBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, info.Size(), MaxFileBytes)
	}

	return nil
}

// projectsOf lists the distinct projects as a non-nil slice so the result
// encodes as [] rather than null.
func projectsOf(tasks []model.Task) []model.Project {
	projects := analysis.Projects(tasks)
	if projects == nil {
		return []model.Project{}
	}

	return projects
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
