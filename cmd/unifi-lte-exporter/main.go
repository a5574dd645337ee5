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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/carverauto/unifi-lte-exporter/pkg/config"
	"github.com/carverauto/unifi-lte-exporter/pkg/lifecycle"
	"github.com/carverauto/unifi-lte-exporter/pkg/logger"
	"github.com/carverauto/unifi-lte-exporter/pkg/metrics"
	"github.com/carverauto/unifi-lte-exporter/pkg/models"
	"github.com/carverauto/unifi-lte-exporter/pkg/poller"
	"github.com/carverauto/unifi-lte-exporter/pkg/unifi"
	"github.com/carverauto/unifi-lte-exporter/pkg/version"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const serviceName = "unifi-lte-exporter"

var (
	errFailedToLoadConfig = errors.New("failed to load config")
	errInvalidConfig      = errors.New("invalid config")
)

func main() {
	if err := run(); err != nil {
		logger.Fatal().Err(err).Msg("Fatal error")
	}
}

func run() error {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}

	if err != nil {
		return err
	}

	if opts.showVersion {
		fmt.Printf("%s %s\n", serviceName, version.GetFullVersion())
		return nil
	}

	ctx, stop := lifecycle.SignalContext(context.Background())
	defer stop()

	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	if err := lifecycle.InitializeLogger(ctx, cfg.Logging); err != nil {
		return err
	}

	defer func() {
		if err := lifecycle.ShutdownLogger(); err != nil {
			logger.Warn().Err(err).Msg("Telemetry shutdown incomplete")
		}
	}()

	logger.Info().
		Str("version", version.GetFullVersion()).
		Str("controller", cfg.Hostname).
		Str("site", cfg.Site).
		Str("listen", cfg.ListenAddr).
		Dur("interval", cfg.PollInterval.Std()).
		Bool("insecure_skip_verify", cfg.InsecureSkipVerify).
		Msg("Starting UniFi LTE exporter")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := setupTelemetry(ctx, cfg, reg); err != nil {
		return err
	}

	sink, err := metrics.NewPrometheusSink(reg, cfg.MetricNamespace)
	if err != nil {
		return err
	}

	serverLog, err := lifecycle.CreateComponentLogger("metrics-server", nil)
	if err != nil {
		return err
	}

	server := metrics.NewServer(cfg.ListenAddr, reg, serverLog)

	// bind while still privileged so ports below 1024 work
	if err := server.Listen(); err != nil {
		return err
	}

	if err := lifecycle.DropPrivileges(cfg.RunAsUser); err != nil {
		return fmt.Errorf("failed to drop privileges: %w", err)
	}

	clientLog, err := lifecycle.CreateComponentLogger("unifi-client", nil)
	if err != nil {
		return err
	}

	pollerLog, err := lifecycle.CreateComponentLogger("poller", nil)
	if err != nil {
		return err
	}

	client := unifi.NewClient(unifi.ClientConfig{
		Host:               cfg.Hostname,
		Site:               cfg.Site,
		Timeout:            cfg.RequestTimeout.Std(),
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}, clientLog)

	p := poller.New(poller.Config{
		Username:     cfg.Username,
		Password:     cfg.Password,
		PollInterval: cfg.PollInterval.Std(),
		AuthBackoff:  cfg.AuthBackoff.Std(),
		Models:       cfg.Models,
	}, client, sink, pollerLog)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Serve(gctx)
	})

	g.Go(func() error {
		return p.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info().Msg("UniFi LTE exporter stopped")

	return nil
}

// loadConfig layers defaults, .env files, the config file, the environment
// and the command line, then validates the result.
func loadConfig(ctx context.Context, opts *cliOptions) (*models.ExporterConfig, error) {
	if _, err := config.LoadDotEnv(config.DotEnvPaths()...); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	cfg := models.DefaultExporterConfig()

	if err := config.NewConfig(nil).Load(ctx, opts.configPath, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	if err := opts.apply(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidConfig, err)
	}

	return cfg, nil
}

// setupTelemetry wires the exporter's own metrics into reg and, when
// configured, starts OTLP export of metrics and traces.
func setupTelemetry(ctx context.Context, cfg *models.ExporterConfig, reg prometheus.Registerer) error {
	instanceID := uuid.NewString()

	var metricsOTel, tracingOTel *logger.OTelConfig

	exportInterval := models.Duration(models.DefaultExportInterval)

	if cfg.Telemetry != nil {
		metricsOTel = cfg.Telemetry.Metrics
		tracingOTel = cfg.Telemetry.Tracing

		if cfg.Telemetry.ExportInterval > 0 {
			exportInterval = cfg.Telemetry.ExportInterval
		}
	}

	if _, err := logger.InitializeMetrics(ctx, logger.MetricsConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.GetVersion(),
		InstanceID:     instanceID,
		OTel:           metricsOTel,
		Registerer:     reg,
		ExportInterval: exportInterval.Std(),
	}); err != nil {
		return fmt.Errorf("failed to initialize self metrics: %w", err)
	}

	tracingLog, err := lifecycle.CreateComponentLogger("tracing", nil)
	if err != nil {
		return err
	}

	if _, err := logger.InitializeTracing(ctx, logger.TracingConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.GetVersion(),
		InstanceID:     instanceID,
		Logger:         tracingLog,
		OTel:           tracingOTel,
	}); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	return nil
}
