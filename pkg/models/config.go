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

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/unifi-lte-exporter/pkg/logger"
)

const (
	DefaultSite            = "default"
	DefaultPollInterval    = 30 * time.Second
	DefaultAuthBackoff     = 60 * time.Second
	DefaultRequestTimeout  = 5 * time.Second
	DefaultListenAddr      = ":9013"
	DefaultMetricNamespace = "unifi"
	DefaultExportInterval  = 30 * time.Second
)

// DefaultModels is the LTE backup device allow-list.
var DefaultModels = []string{"ULTEPEU", "ULTEUS"} //nolint:gochecknoglobals // read-only default

// ExporterConfig is the full runtime configuration of the exporter.
type ExporterConfig struct {
	Hostname           string           `json:"hostname"`
	Username           string           `json:"username"`
	Password           string           `json:"password"`
	Site               string           `json:"site"`
	PollInterval       Duration         `json:"poll_interval"`
	AuthBackoff        Duration         `json:"auth_backoff"`
	RequestTimeout     Duration         `json:"request_timeout"`
	ListenAddr         string           `json:"listen_addr"`
	InsecureSkipVerify bool             `json:"insecure_skip_verify"`
	Models             []string         `json:"models"`
	MetricNamespace    string           `json:"metric_namespace"`
	RunAsUser          string           `json:"run_as_user,omitempty"`
	Logging            *logger.Config   `json:"logging,omitempty"`
	Telemetry          *TelemetryConfig `json:"telemetry,omitempty"`
}

// TelemetryConfig controls OTLP export of the exporter's own metrics and traces.
// The self metrics are always visible on the scrape endpoint.
type TelemetryConfig struct {
	Metrics        *logger.OTelConfig `json:"metrics,omitempty"`
	Tracing        *logger.OTelConfig `json:"tracing,omitempty"`
	ExportInterval Duration           `json:"export_interval"`
}

// DefaultExporterConfig returns a configuration populated with every default
// except the controller credentials.
func DefaultExporterConfig() *ExporterConfig {
	return &ExporterConfig{
		Site:               DefaultSite,
		PollInterval:       Duration(DefaultPollInterval),
		AuthBackoff:        Duration(DefaultAuthBackoff),
		RequestTimeout:     Duration(DefaultRequestTimeout),
		ListenAddr:         DefaultListenAddr,
		InsecureSkipVerify: true,
		Models:             append([]string(nil), DefaultModels...),
		MetricNamespace:    DefaultMetricNamespace,
		Logging:            logger.DefaultConfig(),
	}
}

// Validate implements config.Validator.
func (c *ExporterConfig) Validate() error {
	if c.Hostname == "" {
		return ErrHostnameRequired
	}

	if c.Username == "" {
		return ErrUsernameRequired
	}

	if c.Password == "" {
		return ErrPasswordRequired
	}

	if c.ListenAddr == "" {
		return ErrListenAddrRequired
	}

	if len(c.Models) == 0 {
		return ErrNoModels
	}

	for name, d := range map[string]Duration{
		"poll_interval":   c.PollInterval,
		"auth_backoff":    c.AuthBackoff,
		"request_timeout": c.RequestTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidInterval, name)
		}
	}

	if c.Site == "" {
		c.Site = DefaultSite
	}

	if c.MetricNamespace == "" {
		c.MetricNamespace = DefaultMetricNamespace
	}

	return nil
}

// ApplyLegacyEnv overlays the unprefixed variables used by earlier deployments
// (HOSTNAME, USERNAME, PASSWORD, PORT, FREQ). FREQ is a number of seconds.
func (c *ExporterConfig) ApplyLegacyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("HOSTNAME"); ok && v != "" {
		c.Hostname = v
	}

	if v, ok := lookup("USERNAME"); ok && v != "" {
		c.Username = v
	}

	if v, ok := lookup("PASSWORD"); ok && v != "" {
		c.Password = v
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("%w: PORT=%q", ErrInvalidLegacyEnv, v)
		}

		c.ListenAddr = ":" + strconv.Itoa(port)
	}

	if v, ok := lookup("FREQ"); ok && v != "" {
		freq, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || freq <= 0 {
			return fmt.Errorf("%w: FREQ=%q", ErrInvalidLegacyEnv, v)
		}

		c.PollInterval = Duration(time.Duration(freq) * time.Second)
	}

	return nil
}
