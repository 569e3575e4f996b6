/*

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics exposes a Scheduler's live state through OpenTelemetry
// observable gauges: an embedding application chooses and wires its own
// exporter against whatever MeterProvider it installs, this package only
// registers the instruments and the callbacks that read them.
package metrics

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/wetpaint-run/wetpaint/reactive"
	"github.com/wetpaint-run/wetpaint/reactive/syncbridge"
)

const (
	liveWatchCountMetricName    = "reactive_live_watch_count"
	lastFrameIDMetricName       = "reactive_last_frame_id"
	syncBridgeAliasedBitsMetric = "reactive_sync_bridge_aliased_bits"
)

var (
	meter           metric.Meter
	liveWatchCountM metric.Int64ObservableGauge
	lastFrameIDM    metric.Int64ObservableGauge
	aliasedBitsM    metric.Int64ObservableGauge
)

func init() {
	var err error
	meterProvider := otel.GetMeterProvider()
	meter = meterProvider.Meter("wetpaint")

	liveWatchCountM, err = meter.Int64ObservableGauge(
		liveWatchCountMetricName,
		metric.WithDescription("The total number of watches ever spawned against the Scheduler"))
	if err != nil {
		panic(err)
	}
	lastFrameIDM, err = meter.Int64ObservableGauge(
		lastFrameIDMetricName,
		metric.WithDescription("The scheduler's frame counter, advanced once per drained frame and wrapping modulo 256"))
	if err != nil {
		panic(err)
	}
	aliasedBitsM, err = meter.Int64ObservableGauge(
		syncBridgeAliasedBitsMetric,
		metric.WithDescription("The number of SyncBridge registrations that landed on an already-claimed bit"))
	if err != nil {
		panic(err)
	}
}

// Reporter observes a Scheduler's (and, optionally, one or more
// syncbridge.Bridges') live state on demand, the same pull-based
// ObservableGauge/RegisterCallback pattern the rest of the corpus's
// metric reporters use: nothing is pushed on every frame, a collector
// simply asks for the current values when it scrapes.
type Reporter struct {
	scheduler *reactive.Scheduler
	bridges   []*syncbridge.Bridge
}

// NewReporter constructs a Reporter for s, observing the aliased-bit
// count of every bridge passed in bridges (zero or more — a Scheduler
// with no SyncBridge attached simply reports zero).
func NewReporter(s *reactive.Scheduler, bridges ...*syncbridge.Bridge) (*Reporter, error) {
	r := &Reporter{scheduler: s, bridges: bridges}

	_, err1 := meter.RegisterCallback(r.observeWatchCount, liveWatchCountM)
	_, err2 := meter.RegisterCallback(r.observeFrameID, lastFrameIDM)
	_, err3 := meter.RegisterCallback(r.observeAliasedBits, aliasedBitsM)

	return r, errors.Join(err1, err2, err3)
}

func (r *Reporter) observeWatchCount(_ context.Context, observer metric.Observer) error {
	observer.ObserveInt64(liveWatchCountM, int64(r.scheduler.TotalWatches()))
	return nil
}

func (r *Reporter) observeFrameID(_ context.Context, observer metric.Observer) error {
	observer.ObserveInt64(lastFrameIDM, int64(r.scheduler.FrameID()))
	return nil
}

func (r *Reporter) observeAliasedBits(_ context.Context, observer metric.Observer) error {
	var total int64
	for _, b := range r.bridges {
		total += int64(b.AliasedBits())
	}
	observer.ObserveInt64(aliasedBitsM, total)
	return nil
}
