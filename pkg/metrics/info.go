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

package metrics

import (
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// infoCollector exposes a constant 1 whose labels are a field map that is
// replaced wholesale on every Set. The label names vary between sets, so it
// is registered as an unchecked collector.
type infoCollector struct {
	name string
	help string

	mu     sync.Mutex
	fields map[string]string
	set    bool
}

var _ prometheus.Collector = (*infoCollector)(nil)

func newInfoCollector(name, help string) *infoCollector {
	return &infoCollector{name: name, help: help}
}

// Set replaces the current fields. Fields absent from the new map are dropped.
func (c *infoCollector) Set(fields map[string]string) {
	sanitized := make(map[string]string, len(fields))
	for k, v := range fields {
		sanitized[sanitizeLabelName(k)] = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fields = sanitized
	c.set = true
}

// Describe sends nothing, which marks the collector unchecked.
func (*infoCollector) Describe(chan<- *prometheus.Desc) {}

func (c *infoCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.set {
		return
	}

	names := make([]string, 0, len(c.fields))
	for k := range c.fields {
		names = append(names, k)
	}

	sort.Strings(names)

	values := make([]string, len(names))
	for i, k := range names {
		values[i] = c.fields[k]
	}

	desc := prometheus.NewDesc(c.name, c.help, names, nil)

	metric, err := prometheus.NewConstMetric(desc, prometheus.GaugeValue, 1, values...)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(desc, err)
		return
	}

	ch <- metric
}

// sanitizeLabelName maps a field name onto the label name charset
// [a-zA-Z_][a-zA-Z0-9_]*. A leading double underscore is reserved, so it
// is collapsed to one.
func sanitizeLabelName(name string) string {
	if name == "" {
		return "_"
	}

	var b strings.Builder

	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}

			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := b.String()
	for strings.HasPrefix(out, "__") {
		out = out[1:]
	}

	return out
}
