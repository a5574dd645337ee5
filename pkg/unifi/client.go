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

package unifi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carverauto/unifi-lte-exporter/pkg/logger"
	"github.com/carverauto/unifi-lte-exporter/pkg/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	loginPath       = "/api/auth/login"
	deviceListPath  = "/proxy/network/api/s/%s/stat/device"
	csrfHeader      = "X-CSRF-Token"
	defaultSite     = "default"
	defaultTimeout  = 5 * time.Second
	tracerName      = "unifi-lte-exporter/unifi"
	maxErrorBodyLen = 4096
)

// ClientConfig describes how to reach a controller.
type ClientConfig struct {
	// Host is a hostname[:port] or a full base URL. Bare hosts use https.
	Host               string
	Site               string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Client performs the login and device listing calls against a controller.
type Client struct {
	baseURL    string
	site       string
	httpClient *http.Client
	userAgent  string
	tracer     trace.Tracer
	logger     logger.Logger
}

// NewClient builds a controller client with a bounded timeout.
func NewClient(cfg ClientConfig, log logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.Site == "" {
		cfg.Site = defaultSite
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Client{
		baseURL:    baseURL(cfg.Host),
		site:       cfg.Site,
		httpClient: createHTTPClient(cfg),
		userAgent:  version.UserAgent(),
		tracer:     otel.Tracer(tracerName),
		logger:     log,
	}
}

func baseURL(host string) string {
	host = strings.TrimRight(host, "/")
	if strings.Contains(host, "://") {
		return host
	}

	return "https://" + host
}

// createHTTPClient initializes the HTTP client with the configured timeout and TLS settings.
func createHTTPClient(cfg ClientConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // G402: controllers ship self-signed certificates
			},
		},
	}
}

// FetchDevices lists the devices of the configured site. A nil session sends
// an anonymous request.
func (c *Client) FetchDevices(ctx context.Context, session *Session) (*DeviceListResponse, error) {
	const op = "fetch devices"

	ctx, span := c.tracer.Start(ctx, "unifi.fetch_devices", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	devicesURL := c.baseURL + fmt.Sprintf(deviceListPath, url.PathEscape(c.site))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, devicesURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create devices request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	c.decorate(req, session)

	span.SetAttributes(
		attribute.String("unifi.site", c.site),
		attribute.Bool("unifi.session", session != nil),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportFailure(span, op, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusFailure(span, op, resp)
	}

	var devices DeviceListResponse

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	if err := dec.Decode(&devices); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode")

		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	span.SetAttributes(attribute.Int("unifi.devices", len(devices.Data)))

	c.logger.Debug().
		Int("devices", len(devices.Data)).
		Str("site", c.site).
		Msg("Fetched device list")

	return &devices, nil
}

// Login posts the credentials and returns the session the controller issued.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	const op = "login"

	ctx, span := c.tracer.Start(ctx, "unifi.login", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	c.decorate(req, nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportFailure(span, op, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusFailure(span, op, resp)
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyLen))

	session := &Session{
		Cookies:    resp.Cookies(),
		CSRFToken:  resp.Header.Get(csrfHeader),
		ObtainedAt: time.Now(),
	}

	span.SetAttributes(attribute.Int("unifi.cookies", len(session.Cookies)))

	c.logger.Debug().
		Int("cookies", len(session.Cookies)).
		Bool("csrf", session.CSRFToken != "").
		Msg("Controller issued a new session")

	return session, nil
}

// decorate adds the user agent and, when present, the session material.
func (c *Client) decorate(req *http.Request, session *Session) {
	req.Header.Set("User-Agent", c.userAgent)

	if session == nil {
		return
	}

	for _, cookie := range session.Cookies {
		req.AddCookie(cookie)
	}

	if session.CSRFToken != "" {
		req.Header.Set(csrfHeader, session.CSRFToken)
	}
}

func (*Client) transportFailure(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "transport")

	return &TransportError{Op: op, Err: err}
}

func (c *Client) statusFailure(span trace.Span, op string, resp *http.Response) error {
	// keep the connection reusable
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyLen))

	span.SetStatus(codes.Error, resp.Status)

	c.logger.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Msg("Controller returned a non-200 status")

	return &StatusError{Op: op, StatusCode: resp.StatusCode}
}
