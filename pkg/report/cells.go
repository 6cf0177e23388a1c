package report

import (
	"fmt"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/tcc/pkg/analysis"
	"github.com/Sumatoshi-tech/tcc/pkg/timespan"
)

// Ledger column headers.
var ledgerHeader = table.Row{"タスク", "日付", "開始時刻", "終了時刻", "予定", "実績", "実績/予定", "コメント"}

// Axis summary column headers.
var axisHeader = table.Row{"区分", "タスク数", "合計所要時間", "合計見積時間", "実績/予定", "1日あたり所要時間"}

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Statistic labels.
const (
	labelEstimated = "合計見積時間"
	labelWork      = "合計所要時間"
	labelDays      = "実施期間"
	labelPerDay    = "1日あたり所要時間"
	labelMax       = "1日あたり最大"
	labelMin       = "1日あたり最小"
	labelMedian    = "1日あたり中央値"
	labelDeviation = "標準偏差"
	labelPerValue  = "単位あたり所要時間"
)

// axisTitles maps axis names to section titles.
var axisTitles = map[string]string{
	analysis.AxisWorkday: "平日/休日",
	analysis.AxisWeekday: "曜日",
	analysis.AxisTag:     "グループ",
}

func axisTitle(name string) string {
	if title, ok := axisTitles[name]; ok {
		return fmt.Sprintf("%s (%s)", title, name)
	}

	return name
}

// ratioText formats an optional ratio with two decimals, or the placeholder.
func ratioText(r *float64) string {
	if r == nil || math.IsNaN(*r) || math.IsInf(*r, 0) {
		return timespan.Placeholder
	}

	return fmt.Sprintf("%.2f", *r)
}

func estimateText(t analysis.AnalyzedTask) string {
	if !t.HasEstimate() {
		return timespan.Placeholder
	}

	return timespan.FromDuration(t.EstimatedTime).String()
}

func ledgerRow(t analysis.AnalyzedTask) table.Row {
	return table.Row{
		t.Name,
		t.BeginTime.Format(dateLayout),
		t.BeginTime.Format(clockLayout),
		t.EndTime.Format(clockLayout),
		estimateText(t),
		t.TimespanSpan().String(),
		ratioText(t.TimeGapRatio),
		t.Comment,
	}
}

func axisRow(g analysis.LabeledStatistics) table.Row {
	st := g.Statistics

	return table.Row{
		g.Label,
		len(st.Tasks),
		st.WorkSpan().String(),
		st.EstimatedSpan().String(),
		ratioText(st.TotalTimeGapRatio),
		st.PerDaySpan().String(),
	}
}

// statLine is one labeled statistic.
type statLine struct {
	label string
	value string
	// ratio is set on the work-time line for highlighting.
	ratio *float64
}

func statLines(result *analysis.AnalysisResult) []statLine {
	st := result.Overall

	work := st.WorkSpan().String()
	if st.TotalTimeGapRatio != nil {
		work = fmt.Sprintf("%s (x%s)", work, ratioText(st.TotalTimeGapRatio))
	}

	lines := []statLine{
		{label: labelEstimated, value: st.EstimatedSpan().String()},
		{label: labelWork, value: work, ratio: st.TotalTimeGapRatio},
		{label: labelDays, value: fmt.Sprintf("%d日", st.WorkDays)},
		{label: labelPerDay, value: st.PerDaySpan().String()},
		{label: labelMax, value: st.MaxSpan().String()},
		{label: labelMin, value: st.MinSpan().String()},
		{label: labelMedian, value: st.MedianSpan().String()},
		{label: labelDeviation, value: st.DeviationSpan().String()},
	}

	if span, ok := st.PerValueSpan(); ok {
		lines = append(lines, statLine{
			label: fmt.Sprintf("%s (÷%d)", labelPerValue, *result.ExternalValue),
			value: span.String(),
		})
	}

	return lines
}
