package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
)

// Chart sizing and colors.
const (
	chartWidth     = "100%"
	chartHeight    = "480px"
	colorActual    = "#a16207"
	colorEstimate  = "#0369a1"
	colorText      = "#44403c"
	colorTextMuted = "#78716c"
	colorGrid      = "#e7e5e4"
	colorAxis      = "#a8a29e"
	yAxisMinutes   = "minutes"
	dataZoomEnd    = 100
)

// WritePlot renders result as a standalone HTML page of bar charts: per-task
// actual vs estimate, then total work time per bucket for each axis.
func WritePlot(w io.Writer, result *analysis.AnalysisResult) error {
	if result == nil {
		return ErrNilResult
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Review - %s", result.ProjectName)

	page.AddCharts(taskChart(result))

	for _, axis := range result.Groups {
		page.AddCharts(axisChart(axis))
	}

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	return nil
}

func taskChart(result *analysis.AnalysisResult) *charts.Bar {
	tasks := result.Overall.Tasks

	labels := make([]string, len(tasks))
	actual := make([]opts.BarData, len(tasks))
	estimate := make([]opts.BarData, len(tasks))

	for i, t := range tasks {
		labels[i] = fmt.Sprintf("%s %s", t.BeginTime.Format(dateLayout), t.Name)
		actual[i] = opts.BarData{Value: t.Timespan}
		estimate[i] = opts.BarData{Value: t.EstimatedMinutes()}
	}

	bar := newBar(result.ProjectName, "実績 / 予定")
	bar.SetXAxis(labels)
	bar.AddSeries("実績", actual, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorActual}))
	bar.AddSeries("予定", estimate, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorEstimate}))

	return bar
}

func axisChart(axis analysis.AxisStatistics) *charts.Bar {
	var (
		labels []string
		work   []opts.BarData
	)

	for _, g := range axis.Groups {
		if g.Label == analysis.LabelAll {
			continue
		}

		labels = append(labels, g.Label)
		work = append(work, opts.BarData{Value: g.Statistics.TotalWorkTime})
	}

	bar := newBar(axisTitle(axis.Axis), labelWork)
	bar.SetXAxis(labels)
	bar.AddSeries(labelWork, work, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorActual}))

	return bar
}

func newBar(title, subtitle string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:         title,
			Subtitle:      subtitle,
			Left:          "center",
			TitleStyle:    &opts.TextStyle{Color: colorText},
			SubtitleStyle: &opts.TextStyle{Color: colorTextMuted},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "10%", Left: "center"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: dataZoomEnd}, opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Color: colorTextMuted},
			AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: colorAxis}},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      yAxisMinutes,
			AxisLabel: &opts.AxisLabel{Color: colorTextMuted},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: colorGrid}},
		}),
	)

	return bar
}
