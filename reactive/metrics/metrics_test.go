package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/metric/metricdata/metricdatatest"

	"github.com/wetpaint-run/wetpaint/reactive"
	"github.com/wetpaint-run/wetpaint/reactive/syncbridge"
)

func installTestMeter(t *testing.T) *sdkmetric.PeriodicReader {
	t.Helper()
	rdr := sdkmetric.NewPeriodicReader(new(fnExporter))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(rdr))
	meter = mp.Meter("test")

	var err error
	liveWatchCountM, err = meter.Int64ObservableGauge("live_watch_count")
	assert.NoError(t, err)
	lastFrameIDM, err = meter.Int64ObservableGauge("last_frame_id")
	assert.NoError(t, err)
	aliasedBitsM, err = meter.Int64ObservableGauge("aliased_bits")
	assert.NoError(t, err)
	return rdr
}

func TestReporter_observesLiveWatchCount(t *testing.T) {
	rdr := installTestMeter(t)

	s := reactive.NewScheduler()
	s.AddWatch("a", func(*reactive.Tracker) {})
	s.AddWatch("b", func(*reactive.Tracker) {})

	r, err := NewReporter(s)
	assert.NoError(t, err)
	assert.NotNil(t, r)

	rm := &metricdata.ResourceMetrics{}
	assert.NoError(t, rdr.Collect(context.Background(), rm))

	want := metricdata.Metrics{
		Name: "live_watch_count",
		Data: metricdata.Gauge[int64]{
			DataPoints: []metricdata.DataPoint[int64]{{Value: 2}},
		},
	}
	metricdatatest.AssertEqual(t, want, findMetric(rm, "live_watch_count"), metricdatatest.IgnoreTimestamp())
}

func TestReporter_observesAliasedBits(t *testing.T) {
	rdr := installTestMeter(t)

	s := reactive.NewScheduler()
	b := syncbridge.NewBridge()

	r, err := NewReporter(s, b)
	assert.NoError(t, err)
	assert.NotNil(t, r)

	rm := &metricdata.ResourceMetrics{}
	assert.NoError(t, rdr.Collect(context.Background(), rm))

	want := metricdata.Metrics{
		Name: "aliased_bits",
		Data: metricdata.Gauge[int64]{
			DataPoints: []metricdata.DataPoint[int64]{{Value: 0}},
		},
	}
	metricdatatest.AssertEqual(t, want, findMetric(rm, "aliased_bits"), metricdatatest.IgnoreTimestamp())
}

func findMetric(rm *metricdata.ResourceMetrics, name string) metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	return metricdata.Metrics{}
}

type fnExporter struct {
	exportFunc func(context.Context, *metricdata.ResourceMetrics) error
}

func (e *fnExporter) Temporality(k sdkmetric.InstrumentKind) metricdata.Temporality {
	return sdkmetric.DefaultTemporalitySelector(k)
}

func (e *fnExporter) Aggregation(k sdkmetric.InstrumentKind) sdkmetric.Aggregation {
	return sdkmetric.DefaultAggregationSelector(k)
}

func (e *fnExporter) Export(ctx context.Context, m *metricdata.ResourceMetrics) error {
	if e.exportFunc != nil {
		return e.exportFunc(ctx, m)
	}
	return nil
}

func (e *fnExporter) ForceFlush(_ context.Context) error { return nil }
func (e *fnExporter) Shutdown(_ context.Context) error   { return nil }
