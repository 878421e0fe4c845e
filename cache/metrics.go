package cache

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("symdiff.cache")

var (
	cacheHits      metric.Int64Counter
	cacheMisses    metric.Int64Counter
	cacheEvictions metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes instruments once
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error
		if cacheHits, err = meter.Int64Counter(
			"symdiff_cache_hits_total",
			metric.WithDescription("Total number of cache hits"),
		); err != nil {
			metricsErr = err
			return
		}
		if cacheMisses, err = meter.Int64Counter(
			"symdiff_cache_misses_total",
			metric.WithDescription("Total number of cache misses"),
		); err != nil {
			metricsErr = err
			return
		}
		if cacheEvictions, err = meter.Int64Counter(
			"symdiff_cache_evictions_total",
			metric.WithDescription("Total number of baseline content evictions"),
		); err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

func recordHit(ctx context.Context, kind string) {
	if initMetrics() != nil {
		return
	}
	cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", kind)))
}

func recordMiss(ctx context.Context, kind string) {
	if initMetrics() != nil {
		return
	}
	cacheMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", kind)))
}

func recordEviction(ctx context.Context) {
	if initMetrics() != nil {
		return
	}
	cacheEvictions.Add(ctx, 1)
}
