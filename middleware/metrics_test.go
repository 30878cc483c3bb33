package middleware_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/xraph/prospect/business"
	mw "github.com/xraph/prospect/middleware"
)

func setupTestMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return reader, mp
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func stringAttrs(kvs []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(kvs))
	for _, a := range kvs {
		if a.Value.Type() == attribute.STRING {
			out[string(a.Key)] = a.Value.AsString()
		}
	}
	return out
}

func TestMetrics_RecordsDuration(t *testing.T) {
	reader, mp := setupTestMeter()
	m := mw.MetricsWithMeter(mp.Meter("test"))
	b := newTestBusiness()

	_ = m(context.Background(), b, advance(b, business.StatusSalesApproved))

	rm := collectMetrics(t, reader)
	metric := findMetric(rm, "prospect.transition.duration")
	if metric == nil {
		t.Fatal("prospect.transition.duration metric not found")
	}

	hist, ok := metric.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatal("expected Histogram[float64] data type")
	}
	if len(hist.DataPoints) == 0 {
		t.Fatal("no data points recorded for duration")
	}
	if hist.DataPoints[0].Count != 1 {
		t.Errorf("expected count=1, got %d", hist.DataPoints[0].Count)
	}
}

func TestMetrics_Attributes(t *testing.T) {
	tests := []struct {
		name    string
		handler func(b *business.Business) mw.Handler
		want    map[string]string
	}{
		{
			name: "ok",
			handler: func(b *business.Business) mw.Handler {
				return advance(b, business.StatusSalesApproved)
			},
			want: map[string]string{
				"from":   "Market Approved",
				"to":     "Sales Approved",
				"status": "ok",
			},
		},
		{
			name: "error",
			handler: func(_ *business.Business) mw.Handler {
				return func(context.Context) error { return errors.New("boom") }
			},
			want: map[string]string{
				"from":   "Market Approved",
				"to":     "Market Approved",
				"status": "error",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, mp := setupTestMeter()
			m := mw.MetricsWithMeter(mp.Meter("test"))
			b := newTestBusiness()

			_ = m(context.Background(), b, tt.handler(b))

			rm := collectMetrics(t, reader)
			metric := findMetric(rm, "prospect.transition.executions")
			if metric == nil {
				t.Fatal("prospect.transition.executions metric not found")
			}
			sum, ok := metric.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatal("expected Sum[int64] data type")
			}
			if len(sum.DataPoints) != 1 {
				t.Fatalf("expected 1 data point, got %d", len(sum.DataPoints))
			}
			if sum.DataPoints[0].Value != 1 {
				t.Errorf("expected value=1, got %d", sum.DataPoints[0].Value)
			}

			got := stringAttrs(sum.DataPoints[0].Attributes.ToSlice())
			for key, want := range tt.want {
				if got[key] != want {
					t.Errorf("attribute %q = %q, want %q", key, got[key], want)
				}
			}
		})
	}
}

func TestMetrics_DefaultNoopSafe(t *testing.T) {
	m := mw.Metrics()
	b := newTestBusiness()

	if err := m(context.Background(), b, advance(b, business.StatusSalesApproved)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != business.StatusSalesApproved {
		t.Error("handler was not called")
	}
}
