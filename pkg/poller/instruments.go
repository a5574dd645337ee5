/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package poller

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "unifi-lte-exporter/poller"

const (
	resultOK        = "ok"
	resultTransport = "transport_error"
	resultRejected  = "rejected"
	resultDecode    = "decode_error"
	resultFailure   = "failure"
)

type instruments struct {
	polls         metric.Int64Counter
	logins        metric.Int64Counter
	mappingErrors metric.Int64Counter
	matched       metric.Int64Gauge
	duration      metric.Float64Histogram
}

// newInstruments creates the loop's self metrics on the global meter
// provider. Instruments returned alongside an error are still usable.
func newInstruments() (*instruments, error) {
	meter := otel.Meter(meterName)

	var errs, err error

	inst := &instruments{}

	inst.polls, err = meter.Int64Counter("unifi_lte_exporter_polls",
		metric.WithDescription("Poll cycles by outcome."))
	errs = errors.Join(errs, err)

	inst.logins, err = meter.Int64Counter("unifi_lte_exporter_logins",
		metric.WithDescription("Controller login attempts by outcome."))
	errs = errors.Join(errs, err)

	inst.mappingErrors, err = meter.Int64Counter("unifi_lte_exporter_mapping_errors",
		metric.WithDescription("Device record fields that could not be mapped."))
	errs = errors.Join(errs, err)

	inst.matched, err = meter.Int64Gauge("unifi_lte_exporter_matched_devices",
		metric.WithDescription("Allow-listed devices in the last device list."))
	errs = errors.Join(errs, err)

	inst.duration, err = meter.Float64Histogram("unifi_lte_exporter_poll_duration",
		metric.WithDescription("Duration of poll cycles."),
		metric.WithUnit("s"))
	errs = errors.Join(errs, err)

	return inst, errs
}

func (i *instruments) poll(ctx context.Context, result string, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("result", result))

	i.polls.Add(ctx, 1, attrs)
	i.duration.Record(ctx, seconds, attrs)
}

func (i *instruments) login(ctx context.Context, result string) {
	i.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (i *instruments) mappingError(ctx context.Context, field string) {
	i.mappingErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("field", field)))
}

func (i *instruments) matchedDevices(ctx context.Context, n int) {
	i.matched.Record(ctx, int64(n))
}
