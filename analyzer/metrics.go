package analyzer

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("symdiff.analyzer")

var (
	analyzeFileLatency metric.Float64Histogram
	analyzeGraphTotal  metric.Int64Counter
	changedNodesTotal  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error
		if analyzeFileLatency, err = meter.Float64Histogram(
			"symdiff_analyze_file_duration_seconds",
			metric.WithDescription("Duration of single file structural diff"),
			metric.WithUnit("s"),
		); err != nil {
			metricsErr = err
			return
		}
		if analyzeGraphTotal, err = meter.Int64Counter(
			"symdiff_analyze_graph_total",
			metric.WithDescription("Total number of published graph diffs"),
		); err != nil {
			metricsErr = err
			return
		}
		if changedNodesTotal, err = meter.Int64Counter(
			"symdiff_changed_nodes_total",
			metric.WithDescription("Total number of changed nodes by severity"),
		); err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

func recordAnalyzeFile(ctx context.Context, started time.Time, cached bool) {
	if initMetrics() != nil {
		return
	}
	analyzeFileLatency.Record(ctx, time.Since(started).Seconds(), metric.WithAttributes(attribute.Bool("cached", cached)))
}

func recordAnalyzeGraph(ctx context.Context, severities map[string]int) {
	if initMetrics() != nil {
		return
	}
	analyzeGraphTotal.Add(ctx, 1)
	for level, count := range severities {
		if count > 0 {
			changedNodesTotal.Add(ctx, int64(count), metric.WithAttributes(attribute.String("severity", level)))
		}
	}
}
