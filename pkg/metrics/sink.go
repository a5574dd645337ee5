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

// Package metrics publishes device telemetry into a Prometheus registry and
// serves it for scraping.
package metrics

//go:generate mockgen -destination=mock_sink.go -package=metrics github.com/carverauto/unifi-lte-exporter/pkg/metrics Sink

import (
	"errors"
	"fmt"

	"github.com/carverauto/unifi-lte-exporter/pkg/lte"
	"github.com/prometheus/client_golang/prometheus"
)

// InfoLTE is the name accepted by SetInfo for the LTE text fields.
const InfoLTE = "lte"

// ErrUnknownMetric is returned for names the sink was not built with.
var ErrUnknownMetric = errors.New("unknown metric")

// identityLabels are attached to every gauge.
//
//nolint:gochecknoglobals // fixed label schema
var identityLabels = []string{"id", "name", "model"}

// Sink stores the last value set per metric and label set.
type Sink interface {
	SetGauge(name string, identity lte.Identity, value float64) error
	SetInfo(name string, fields map[string]string) error
}

// PrometheusSink is a Sink backed by client_golang collectors.
type PrometheusSink struct {
	gauges map[string]*prometheus.GaugeVec
	infos  map[string]*infoCollector
}

var _ Sink = (*PrometheusSink)(nil)

// NewPrometheusSink registers one gauge per numeric LTE field, named
// <namespace>_<field>, and the <namespace>_lte_info metric.
func NewPrometheusSink(reg prometheus.Registerer, namespace string) (*PrometheusSink, error) {
	s := &PrometheusSink{
		gauges: make(map[string]*prometheus.GaugeVec, len(lte.NumericFields)),
		infos:  make(map[string]*infoCollector, 1),
	}

	for _, field := range lte.NumericFields {
		gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      field,
			Help:      field,
		}, identityLabels)

		if err := reg.Register(gauge); err != nil {
			return nil, fmt.Errorf("failed to register gauge %s: %w", field, err)
		}

		s.gauges[field] = gauge
	}

	info := newInfoCollector(prometheus.BuildFQName(namespace, InfoLTE, "info"), "LTE device information")
	if err := reg.Register(info); err != nil {
		return nil, fmt.Errorf("failed to register info metric: %w", err)
	}

	s.infos[InfoLTE] = info

	return s, nil
}

// SetGauge sets the gauge for a numeric field under the device identity.
func (s *PrometheusSink) SetGauge(name string, identity lte.Identity, value float64) error {
	gauge, ok := s.gauges[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}

	gauge.WithLabelValues(identity.ID, identity.Name, identity.Model).Set(value)

	return nil
}

// SetInfo replaces the label set of an info metric.
func (s *PrometheusSink) SetInfo(name string, fields map[string]string) error {
	info, ok := s.infos[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}

	info.Set(fields)

	return nil
}
