package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/prospect/business"
	"github.com/xraph/prospect/ext"
	"github.com/xraph/prospect/workflow"
)

// Compile-time interface checks.
var (
	_ ext.Extension          = (*MetricsExtension)(nil)
	_ ext.BusinessCreated    = (*MetricsExtension)(nil)
	_ ext.BusinessProgressed = (*MetricsExtension)(nil)
	_ ext.ProgressRejected   = (*MetricsExtension)(nil)
	_ ext.DealClosed         = (*MetricsExtension)(nil)
)

// MetricsExtension records system-wide lifecycle metrics through an OTel
// meter. Register it as a Prospect extension to track creation rates,
// stage changes, rejections and deal outcomes.
type MetricsExtension struct {
	Created    metric.Int64Counter
	Progressed metric.Int64Counter
	Rejected   metric.Int64Counter
	DealsWon   metric.Int64Counter
	DealsLost  metric.Int64Counter
}

// NewMetricsExtension creates a MetricsExtension using the global meter provider.
func NewMetricsExtension() *MetricsExtension {
	return NewMetricsExtensionWithMeter(otel.Meter("github.com/xraph/prospect/observability"))
}

// NewMetricsExtensionWithMeter creates a MetricsExtension with the provided meter.
// Use an sdkmetric.ManualReader-backed provider for testing.
func NewMetricsExtensionWithMeter(meter metric.Meter) *MetricsExtension {
	// Instrument creation only fails on invalid names; the returned
	// instruments are no-ops in that case.
	created, _ := meter.Int64Counter("prospect.business.created",
		metric.WithDescription("Businesses registered in the New stage"))
	progressed, _ := meter.Int64Counter("prospect.business.progressed",
		metric.WithDescription("Persisted stage transitions"))
	rejected, _ := meter.Int64Counter("prospect.business.rejected",
		metric.WithDescription("Progress requests that did not change state"))
	won, _ := meter.Int64Counter("prospect.deals.won",
		metric.WithDescription("Businesses that reached Won"))
	lost, _ := meter.Int64Counter("prospect.deals.lost",
		metric.WithDescription("Businesses that reached Lost"))

	return &MetricsExtension{
		Created:    created,
		Progressed: progressed,
		Rejected:   rejected,
		DealsWon:   won,
		DealsLost:  lost,
	}
}

// Name implements ext.Extension.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnBusinessCreated implements ext.BusinessCreated.
func (m *MetricsExtension) OnBusinessCreated(ctx context.Context, _ *business.Business) error {
	m.Created.Add(ctx, 1)
	return nil
}

// OnBusinessProgressed implements ext.BusinessProgressed.
func (m *MetricsExtension) OnBusinessProgressed(ctx context.Context, _ *business.Business, tr *workflow.Transition, _ time.Duration) error {
	m.Progressed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", string(tr.From)),
		attribute.String("to", string(tr.To)),
	))
	return nil
}

// OnProgressRejected implements ext.ProgressRejected.
func (m *MetricsExtension) OnProgressRejected(ctx context.Context, _ string, _ error) error {
	m.Rejected.Add(ctx, 1)
	return nil
}

// OnDealClosed implements ext.DealClosed.
func (m *MetricsExtension) OnDealClosed(ctx context.Context, b *business.Business) error {
	switch b.Status {
	case business.StatusWon:
		m.DealsWon.Add(ctx, 1)
	case business.StatusLost:
		m.DealsLost.Add(ctx, 1)
	}
	return nil
}
