package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
)

// WriteMarkdown renders result as a markdown review document.
func WriteMarkdown(w io.Writer, result *analysis.AnalysisResult) error {
	if result == nil {
		return ErrNilResult
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# Review - %s\n\n", result.ProjectName)

	ledger := table.NewWriter()
	ledger.AppendHeader(ledgerHeader)

	for _, t := range result.Overall.Tasks {
		ledger.AppendRow(ledgerRow(t))
	}

	b.WriteString(ledger.RenderMarkdown())
	b.WriteString("\n\n")

	for _, line := range statLines(result) {
		fmt.Fprintf(&b, "- %s: %s\n", line.label, line.value)
	}

	for _, axis := range result.Groups {
		fmt.Fprintf(&b, "\n## %s\n\n", axisTitle(axis.Axis))

		tbl := table.NewWriter()
		tbl.AppendHeader(axisHeader)

		for _, g := range axis.Groups {
			tbl.AppendRow(axisRow(g))
		}

		b.WriteString(tbl.RenderMarkdown())
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	return nil
}
