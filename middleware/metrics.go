package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/prospect/business"
)

// meterName is the instrumentation scope name for prospect metrics.
const meterName = "github.com/xraph/prospect"

// Metrics returns middleware that records per-transition metrics using the
// global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - prospect.transition.duration (Float64Histogram): seconds, with
//     attributes from, to, status ("ok" or "error")
//   - prospect.transition.executions (Int64Counter): with the same attributes
func Metrics() Middleware {
	return MetricsWithMeter(otel.Meter(meterName))
}

// MetricsWithMeter returns metrics middleware using the provided meter.
func MetricsWithMeter(meter metric.Meter) Middleware {
	duration, dErr := meter.Float64Histogram(
		"prospect.transition.duration",
		metric.WithDescription("Duration of workflow transitions in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	executions, eErr := meter.Int64Counter(
		"prospect.transition.executions",
		metric.WithDescription("Total number of workflow transitions attempted"),
		metric.WithUnit("{transition}"),
	)
	_ = eErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, b *business.Business, next Handler) error {
		from := b.Status
		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		to := b.Status
		if err != nil {
			status = "error"
			to = from
		}

		attrs := metric.WithAttributes(
			attribute.String("from", string(from)),
			attribute.String("to", string(to)),
			attribute.String("status", status),
		)

		duration.Record(ctx, elapsed, attrs)
		executions.Add(ctx, 1, attrs)

		return err
	}
}
