package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/tcc/pkg/observability"
)

func newManualMeter(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func sumOf(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()

	require.NotNil(t, m)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}

	return total
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()

	assert.Equal(t, "tcc", cfg.ServiceName)
	assert.Equal(t, observability.ModeCLI, cfg.Mode)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 5, cfg.ShutdownTimeoutSec)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Empty(t, cfg.MetricsTextfile)
}

func TestInit_NoopWhenNoExport(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogOutput = &logs

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.Nil(t, providers.Registry)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	span.End()

	providers.Logger.Info("hello")
	assert.Contains(t, logs.String(), "hello")
	assert.Contains(t, logs.String(), "service=tcc")

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_MetricsTextfile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tcc.prom")

	cfg := observability.DefaultConfig()
	cfg.MetricsTextfile = path
	cfg.LogOutput = &bytes.Buffer{}

	providers, err := observability.Init(cfg)
	require.NoError(t, err)
	require.NotNil(t, providers.Registry)

	runs, err := observability.NewRunMetrics(providers.Meter)
	require.NoError(t, err)
	runs.RecordRun(context.Background(), "p1", 4)

	require.NoError(t, observability.RecordReport(providers.Registry, observability.ReportSnapshot{
		ProjectID:        "p1",
		WorkMinutes:      165,
		EstimatedMinutes: 90,
		Tasks:            3,
		WorkDays:         7,
	}))

	require.NoError(t, providers.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `tcc_report_work_minutes{project="p1"} 165`)
	assert.Contains(t, out, `tcc_report_tasks{project="p1"} 3`)
	assert.Contains(t, out, `tcc_report_work_days{project="p1"} 7`)
	assert.Contains(t, out, "tcc_analysis_runs")
}

func TestRecordReport_DuplicateFails(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	snap := observability.ReportSnapshot{ProjectID: "p1"}

	require.NoError(t, observability.RecordReport(reg, snap))
	require.Error(t, observability.RecordReport(reg, snap))
}

func TestWriteTextfile_BadPath(t *testing.T) {
	t.Parallel()

	err := observability.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), prometheus.NewRegistry())
	require.Error(t, err)
}

func TestREDMetrics(t *testing.T) {
	t.Parallel()

	mp, reader := newManualMeter(t)

	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()

	red.RecordRequest(ctx, "analyze", observability.StatusOK, 100*time.Millisecond)
	red.Observe(ctx, "analyze", time.Now(), errors.New("boom"))

	done := red.TrackInflight(ctx, "mcp")
	done()

	rm := collectMetrics(t, reader)

	assert.Equal(t, int64(2), sumOf(t, findMetric(rm, "tcc.requests.total")))
	assert.Equal(t, int64(1), sumOf(t, findMetric(rm, "tcc.errors.total")))
	assert.Equal(t, int64(0), sumOf(t, findMetric(rm, "tcc.inflight.requests")))
	assert.NotNil(t, findMetric(rm, "tcc.request.duration.seconds"))
}

func TestRunMetrics(t *testing.T) {
	t.Parallel()

	mp, reader := newManualMeter(t)

	runs, err := observability.NewRunMetrics(mp.Meter("test"))
	require.NoError(t, err)

	runs.RecordRun(context.Background(), "p1", 3)
	runs.RecordRun(context.Background(), "p2", 2)

	rm := collectMetrics(t, reader)

	assert.Equal(t, int64(2), sumOf(t, findMetric(rm, "tcc.analysis.runs.total")))
	assert.Equal(t, int64(5), sumOf(t, findMetric(rm, "tcc.analysis.tasks.total")))

	var nilRuns *observability.RunMetrics
	assert.NotPanics(t, func() { nilRuns.RecordRun(context.Background(), "p1", 1) })
}

func TestTracingHandler_InjectsTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(observability.NewTracingHandler(inner, "tcc", "1.0.0", observability.ModeMCP))

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.WithGroup("req").InfoContext(ctx, "analysis complete", "tasks", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "tcc", record["service"])
	assert.Equal(t, "mcp", record["mode"])
	assert.Equal(t, "1.0.0", record["version"])

	group, ok := record["req"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", group["trace_id"])
	assert.InDelta(t, 3.0, group["tasks"], 0)
}

func TestTracingHandler_NoTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, nil)
	slog.New(observability.NewTracingHandler(inner, "tcc", "", observability.ModeCLI)).Info("plain")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.NotContains(t, record, "trace_id")
	assert.NotContains(t, record, "version")
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	assert.Nil(t, observability.ParseOTLPHeaders(""))
	assert.Nil(t, observability.ParseOTLPHeaders("garbage"))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, observability.ParseOTLPHeaders("a=1, b = 2"))
}
