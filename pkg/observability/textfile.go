package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Report gauge names, as written to the node_exporter textfile.
const (
	GaugeWorkMinutes      = "tcc_report_work_minutes"
	GaugeEstimatedMinutes = "tcc_report_estimated_minutes"
	GaugeTasks            = "tcc_report_tasks"
	GaugeWorkDays         = "tcc_report_work_days"

	labelProject = "project"
)

// ReportSnapshot is the headline figures of one report, decoupled from the
// analysis types.
type ReportSnapshot struct {
	ProjectID        string
	WorkMinutes      int64
	EstimatedMinutes int64
	Tasks            int
	WorkDays         int64
}

// RecordReport registers gauges for snap on reg. Registering a second snapshot
// of the same project on one registry fails.
func RecordReport(reg prometheus.Registerer, snap ReportSnapshot) error {
	gauges := []struct {
		name  string
		help  string
		value float64
	}{
		{GaugeWorkMinutes, "Total work time of the analyzed project in minutes.", float64(snap.WorkMinutes)},
		{GaugeEstimatedMinutes, "Total estimated time of the analyzed project in minutes.", float64(snap.EstimatedMinutes)},
		{GaugeTasks, "Number of analyzable tasks of the analyzed project.", float64(snap.Tasks)},
		{GaugeWorkDays, "Whole days between the first and the last task.", float64(snap.WorkDays)},
	}

	for _, g := range gauges {
		gauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        g.name,
			Help:        g.help,
			ConstLabels: prometheus.Labels{labelProject: snap.ProjectID},
		})
		gauge.Set(g.value)

		err := reg.Register(gauge)
		if err != nil {
			return fmt.Errorf("register %s: %w", g.name, err)
		}
	}

	return nil
}

// WriteTextfile atomically writes everything g gathers to path in the
// Prometheus text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	err := prometheus.WriteToTextfile(path, g)
	if err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
