package synthesizer

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("interlinked.synthesizer")
	meter  = otel.Meter("interlinked.synthesizer")
)

var (
	synthesizeLatency metric.Float64Histogram
	initializersTotal metric.Int64Counter
	rejectedTotal     metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics registers instruments once
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error
		synthesizeLatency, err = meter.Float64Histogram(
			"interlinked_synthesize_duration_seconds",
			metric.WithDescription("Duration of initializer synthesis per file"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
		initializersTotal, err = meter.Int64Counter(
			"interlinked_initializers_total",
			metric.WithDescription("Initializers processed, by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}
		rejectedTotal, err = meter.Int64Counter(
			"interlinked_rejected_total",
			metric.WithDescription("Files rejected for unsupported initializer formats"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

// outcome values of processed initializers
const (
	outcomeReconciled = "reconciled"
	outcomeInserted   = "inserted"
	outcomeDeleted    = "deleted"
	outcomeSkipped    = "skipped"
)

func recordInitializer(ctx context.Context, mode Mode, outcome string) {
	if err := initMetrics(); err != nil {
		return
	}
	initializersTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", mode.String()),
		attribute.String("outcome", outcome),
	))
}

func recordSynthesis(ctx context.Context, mode Mode, duration time.Duration, rejected bool) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("mode", mode.String()))
	synthesizeLatency.Record(ctx, duration.Seconds(), attrs)
	if rejected {
		rejectedTotal.Add(ctx, 1, attrs)
	}
}
