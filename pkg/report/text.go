package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
	"github.com/Sumatoshi-tech/tcc/pkg/report/terminal"
)

// Text layout constants.
const (
	StatLabelWidth  = 24
	ShareLabelWidth = 14
	ShareBarWidth   = 20
	sectionGap      = "\n"
)

// WriteText renders result for a terminal.
func WriteText(w io.Writer, result *analysis.AnalysisResult, cfg terminal.Config) error {
	if result == nil {
		return ErrNilResult
	}

	width := cfg.Clamped()

	var b strings.Builder

	b.WriteString(terminal.DrawHeader(result.ProjectName, result.ProjectID, width))
	b.WriteString("\n\n")

	ledger := table.NewWriter()
	ledger.SetStyle(table.StyleLight)
	ledger.Style().Format.Footer = text.FormatDefault
	ledger.AppendHeader(ledgerHeader)

	for _, t := range result.Overall.Tasks {
		ledger.AppendRow(ledgerRow(t))
	}

	ledger.AppendFooter(table.Row{fmt.Sprintf("%s tasks", humanize.Comma(int64(len(result.Overall.Tasks))))})

	b.WriteString(ledger.Render())
	b.WriteString("\n\n")

	for _, line := range statLines(result) {
		value := line.value
		if line.ratio != nil {
			value = cfg.Colorize(value, terminal.ColorForRatio(*line.ratio))
		}

		fmt.Fprintf(&b, "  %s %s\n", terminal.PadRight(line.label, StatLabelWidth), value)
	}

	for _, axis := range result.Groups {
		b.WriteString(sectionGap)
		b.WriteString(cfg.Colorize(axisTitle(axis.Axis), terminal.ColorBlue))
		b.WriteString("\n")
		b.WriteString(terminal.DrawSeparator(width))
		b.WriteString("\n")
		writeAxisText(&b, axis, cfg)
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write text: %w", err)
	}

	return nil
}

func writeAxisText(b *strings.Builder, axis analysis.AxisStatistics, cfg terminal.Config) {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(axisHeader)

	for _, g := range axis.Groups {
		tbl.AppendRow(axisRow(g))
	}

	b.WriteString(tbl.Render())
	b.WriteString("\n")

	all, ok := axis.Lookup(analysis.LabelAll)
	if !ok || all.TotalWorkTime == 0 {
		return
	}

	for _, g := range axis.Groups {
		if g.Label == analysis.LabelAll {
			continue
		}

		share := float64(g.Statistics.TotalWorkTime) / float64(all.TotalWorkTime)
		bar := terminal.DrawShareBar(g.Label, share, ShareLabelWidth, ShareBarWidth)
		minutes := cfg.Colorize(humanize.Comma(g.Statistics.TotalWorkTime)+" min", terminal.ColorGray)

		fmt.Fprintf(b, "  %s  %s\n", bar, minutes)
	}
}
