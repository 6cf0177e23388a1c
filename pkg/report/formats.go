// Package report renders analysis results as markdown, terminal text,
// JSON, YAML or an HTML chart page.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
	"github.com/Sumatoshi-tech/tcc/pkg/report/terminal"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatPlot     = "plot"

	// FormatMarkdownAlias is a short CLI alias for markdown output.
	FormatMarkdownAlias = "md"
	// FormatYAMLAlias is the alternate YAML extension.
	FormatYAMLAlias = "yml"
)

// Sentinel errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNilResult         = errors.New("analysis result is nil")
)

// NormalizeFormat canonicalizes a user-provided output format string.
func NormalizeFormat(format string) string {
	normalized := strings.ToLower(strings.TrimSpace(format))

	switch normalized {
	case FormatMarkdownAlias:
		return FormatMarkdown
	case FormatYAMLAlias:
		return FormatYAML
	default:
		return normalized
	}
}

// SupportedFormats returns the canonical output formats.
func SupportedFormats() []string {
	return []string{FormatMarkdown, FormatText, FormatJSON, FormatYAML, FormatPlot}
}

// ValidateFormat returns the canonical form of format, or ErrUnsupportedFormat.
func ValidateFormat(format string) (string, error) {
	normalized := NormalizeFormat(format)
	for _, candidate := range SupportedFormats() {
		if normalized == candidate {
			return normalized, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// Options tune the presentation of human-readable formats.
type Options struct {
	Terminal terminal.Config
}

// Render writes result to w in the given format.
func Render(w io.Writer, format string, result *analysis.AnalysisResult, opts Options) error {
	if result == nil {
		return ErrNilResult
	}

	canonical, err := ValidateFormat(format)
	if err != nil {
		return err
	}

	switch canonical {
	case FormatMarkdown:
		return WriteMarkdown(w, result)
	case FormatText:
		return WriteText(w, result, opts.Terminal)
	case FormatJSON:
		return writeBytes(w, RenderJSON, result)
	case FormatYAML:
		return writeBytes(w, RenderYAML, result)
	case FormatPlot:
		return WritePlot(w, result)
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func writeBytes(w io.Writer, render func(*analysis.AnalysisResult) ([]byte, error), result *analysis.AnalysisResult) error {
	data, err := render(result)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
