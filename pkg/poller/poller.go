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

// Package poller runs the controller session and poll loop.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/carverauto/unifi-lte-exporter/pkg/logger"
	"github.com/carverauto/unifi-lte-exporter/pkg/lte"
	"github.com/carverauto/unifi-lte-exporter/pkg/metrics"
	"github.com/carverauto/unifi-lte-exporter/pkg/unifi"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultPollInterval = 30 * time.Second
	defaultAuthBackoff  = 60 * time.Second
	tracerName          = "unifi-lte-exporter/poller"
)

// State is the authentication state of the loop.
type State int

const (
	// StateUnauthenticated is the initial state; no session has been issued.
	StateUnauthenticated State = iota
	// StateAuthenticated means a session is held and assumed valid until a
	// fetch is rejected.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Config holds what the loop needs from the exporter configuration.
type Config struct {
	Username     string
	Password     string
	PollInterval time.Duration
	AuthBackoff  time.Duration
	Models       []string
}

// Poller alternates device list fetches with re-authentication and pushes
// the mapped telemetry into a metrics sink.
type Poller struct {
	config      Config
	client      ControllerClient
	sink        metrics.Sink
	sessions    unifi.SessionStore
	state       State
	sleeper     Sleeper
	instruments *instruments
	tracer      trace.Tracer
	logger      logger.Logger
}

// Option customizes a Poller.
type Option func(*Poller)

// WithSleeper replaces the timer used between cycles.
func WithSleeper(s Sleeper) Option {
	return func(p *Poller) {
		p.sleeper = s
	}
}

// New creates a Poller in the unauthenticated state.
func New(cfg Config, client ControllerClient, sink metrics.Sink, log logger.Logger, opts ...Option) *Poller {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	if cfg.AuthBackoff <= 0 {
		cfg.AuthBackoff = defaultAuthBackoff
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	inst, err := newInstruments()
	if err != nil {
		log.Warn().Err(err).Msg("Some poller instruments could not be created")
	}

	p := &Poller{
		config:      cfg,
		client:      client,
		sink:        sink,
		state:       StateUnauthenticated,
		sleeper:     realSleeper{},
		instruments: inst,
		tracer:      otel.Tracer(tracerName),
		logger:      log,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// State returns the current authentication state. Not safe to call while
// Run is executing on another goroutine.
func (p *Poller) State() State {
	return p.state
}

// Session returns the held session, or nil.
func (p *Poller) Session() *unifi.Session {
	s, _ := p.sessions.Get()

	return s
}

// Run loops until ctx is cancelled. Failures inside a cycle are logged and
// retried; they never end the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info().
		Dur("interval", p.config.PollInterval).
		Dur("auth_backoff", p.config.AuthBackoff).
		Strs("models", p.config.Models).
		Msg("Starting poll loop")

	for {
		if ctx.Err() != nil {
			break
		}

		delay := p.Step(ctx)
		if delay <= 0 {
			continue
		}

		if err := p.sleeper.Sleep(ctx, delay); err != nil {
			break
		}
	}

	p.logger.Info().Msg("Poll loop stopped")

	return nil
}

// Step runs one cycle and returns how long to wait before the next one.
func (p *Poller) Step(ctx context.Context) time.Duration {
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "poll.cycle",
		trace.WithAttributes(attribute.String("poller.state", p.state.String())))
	defer span.End()

	session, _ := p.sessions.Get()

	resp, err := p.client.FetchDevices(ctx, session)

	switch {
	case err == nil:
		var records []unifi.DeviceRecord
		if resp != nil {
			records = resp.Data
		}

		p.publish(ctx, records)
		p.instruments.poll(ctx, resultOK, time.Since(start).Seconds())

		return p.config.PollInterval

	case errors.Is(err, unifi.ErrTransport):
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")

		p.logger.Error().Err(err).Msg("Controller unreachable, retrying after poll interval")
		p.instruments.poll(ctx, resultTransport, time.Since(start).Seconds())

		return p.config.PollInterval

	case errors.Is(err, unifi.ErrDecodeResponse):
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode")

		p.logger.Error().Err(err).Msg("Controller returned an unreadable device list")
		p.instruments.poll(ctx, resultDecode, time.Since(start).Seconds())

		return p.config.PollInterval

	default:
		span.RecordError(err)

		p.logger.Warn().Err(err).Str("state", p.state.String()).Msg("Device fetch rejected, logging in")
		p.instruments.poll(ctx, resultRejected, time.Since(start).Seconds())

		return p.reauthenticate(ctx, span)
	}
}

func (p *Poller) reauthenticate(ctx context.Context, span trace.Span) time.Duration {
	session, err := p.client.Login(ctx, p.config.Username, p.config.Password)
	if err != nil {
		span.SetStatus(codes.Error, "login")

		p.logger.Error().
			Err(err).
			Dur("backoff", p.config.AuthBackoff).
			Msg("Controller login failed")
		p.instruments.login(ctx, resultFailure)

		return p.config.AuthBackoff
	}

	p.sessions.Set(session)
	p.state = StateAuthenticated

	p.logger.Info().Msg("Logged in to controller")
	p.instruments.login(ctx, resultOK)

	return 0
}

// publish maps the device list and pushes the selected snapshot to the sink.
func (p *Poller) publish(ctx context.Context, records []unifi.DeviceRecord) {
	sel := lte.SelectSnapshot(records, p.config.Models)

	for _, err := range sel.Errors {
		field := "unknown"

		var fieldErr *lte.FieldError
		if errors.As(err, &fieldErr) {
			field = fieldErr.Field
		}

		p.logger.Warn().Err(err).Str("field", field).Msg("Skipping unmappable field")
		p.instruments.mappingError(ctx, field)
	}

	p.instruments.matchedDevices(ctx, sel.Matches)

	if sel.Snapshot == nil {
		p.logger.Debug().Int("devices", len(records)).Msg("No LTE device in device list")
		return
	}

	snap := sel.Snapshot

	if sel.Matches > 1 {
		p.logger.Debug().
			Int("matches", sel.Matches).
			Str("id", snap.Identity.ID).
			Msg("Several LTE devices found, reporting the last one")
	}

	if err := p.sink.SetInfo(metrics.InfoLTE, snap.Text); err != nil {
		p.logger.Error().Err(err).Msg("Failed to publish device info")
	}

	var missing []string

	for _, field := range lte.NumericFields {
		value, ok := snap.Numeric[field]
		if !ok {
			missing = append(missing, field)
			continue
		}

		if err := p.sink.SetGauge(field, snap.Identity, value); err != nil {
			p.logger.Error().Err(err).Str("field", field).Msg("Failed to publish gauge")
		}
	}

	if len(missing) > 0 {
		p.logger.Debug().Strs("fields", missing).Msg("Numeric fields not set this cycle")
	}
}
