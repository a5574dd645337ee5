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
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/carverauto/unifi-lte-exporter/pkg/logger"
	"github.com/carverauto/unifi-lte-exporter/pkg/metrics"
	"github.com/carverauto/unifi-lte-exporter/pkg/unifi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lteDeviceList = `{"meta":{"rc":"ok"},"data":[
	{"_id":"60a1","name":"LTE Backup","model":"ULTEUS","lte_signal":"3 bars","lte_rssi":-71,
	 "lte_failover":false,"lte_imei":"356789012345678","uptime":3600},
	{"_id":"ap1","name":"Lobby","model":"U6LR","uptime":99}
]}`

const otherDeviceList = `{"meta":{"rc":"ok"},"data":[{"_id":"ap1","name":"Lobby","model":"U6LR","uptime":100}]}`

// fakeController mimics the login and stat/device endpoints with a
// switchable device list response.
type fakeController struct {
	mu     sync.Mutex
	status int
	body   string
	logins int
}

func (f *fakeController) set(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.status, f.body = status, body
}

func (f *fakeController) loginCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.logins
}

func (f *fakeController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.URL.Path {
	case "/api/auth/login":
		f.logins++

		http.SetCookie(w, &http.Cookie{Name: "TOKEN", Value: "session-1"})
		_, _ = w.Write([]byte(`{}`))
	case "/proxy/network/api/s/default/stat/device":
		if c, err := r.Cookie("TOKEN"); err != nil || c.Value != "session-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	default:
		http.NotFound(w, r)
	}
}

const expectedGauges = `
# HELP unifi_lte_rssi lte_rssi
# TYPE unifi_lte_rssi gauge
unifi_lte_rssi{id="60a1",model="ULTEUS",name="LTE Backup"} -71
# HELP unifi_lte_signal lte_signal
# TYPE unifi_lte_signal gauge
unifi_lte_signal{id="60a1",model="ULTEUS",name="LTE Backup"} 3
# HELP unifi_uptime uptime
# TYPE unifi_uptime gauge
unifi_uptime{id="60a1",model="ULTEUS",name="LTE Backup"} 3600
`

func TestPollerAgainstController(t *testing.T) {
	controller := &fakeController{}
	controller.set(http.StatusOK, lteDeviceList)

	srv := httptest.NewTLSServer(controller)
	defer srv.Close()

	reg := prometheus.NewRegistry()

	sink, err := metrics.NewPrometheusSink(reg, "unifi")
	require.NoError(t, err)

	client := unifi.NewClient(unifi.ClientConfig{Host: srv.URL, Timeout: 2 * time.Second, InsecureSkipVerify: true}, logger.NewTestLogger())
	p := New(testConfig(), client, sink, logger.NewTestLogger())
	ctx := context.Background()

	// anonymous fetch is rejected, login succeeds, retry immediately
	assert.Equal(t, time.Duration(0), p.Step(ctx))
	assert.Equal(t, 1, controller.loginCount())

	assert.Equal(t, testInterval, p.Step(ctx))
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expectedGauges),
		"unifi_lte_rssi", "unifi_lte_signal", "unifi_uptime"))
	assert.InDelta(t, 0, gaugeValue(t, reg, "unifi_lte_failover"), 0)

	infoCount, err := testutil.GatherAndCount(reg, "unifi_lte_info")
	require.NoError(t, err)
	assert.Equal(t, 1, infoCount)

	// a list without LTE devices leaves previously published values alone
	controller.set(http.StatusOK, otherDeviceList)
	assert.Equal(t, testInterval, p.Step(ctx))
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expectedGauges),
		"unifi_lte_rssi", "unifi_lte_signal", "unifi_uptime"))

	// a server error modifies nothing and triggers a new login
	controller.set(http.StatusInternalServerError, `{}`)
	assert.Equal(t, time.Duration(0), p.Step(ctx))
	assert.Equal(t, 2, controller.loginCount())
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expectedGauges),
		"unifi_lte_rssi", "unifi_lte_signal", "unifi_uptime"))

	// a maintenance page served with 200 waits the poll interval without logging in
	controller.set(http.StatusOK, `<html>maintenance</html>`)
	assert.Equal(t, testInterval, p.Step(ctx))
	assert.Equal(t, testInterval, p.Step(ctx))
	assert.Equal(t, 2, controller.loginCount())
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expectedGauges),
		"unifi_lte_rssi", "unifi_lte_signal", "unifi_uptime"))
}

func TestPollerControllerDown(t *testing.T) {
	srv := httptest.NewTLSServer(&fakeController{})
	client := unifi.NewClient(unifi.ClientConfig{Host: srv.URL, Timeout: time.Second, InsecureSkipVerify: true}, nil)
	srv.Close()

	reg := prometheus.NewRegistry()

	sink, err := metrics.NewPrometheusSink(reg, "unifi")
	require.NoError(t, err)

	p := New(testConfig(), client, sink, nil)

	assert.Equal(t, testInterval, p.Step(context.Background()))
	assert.Equal(t, testInterval, p.Step(context.Background()))
	assert.Equal(t, StateUnauthenticated, p.State())

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Zero(t, count)
}

// gaugeValue returns the value of the single series of a gauge family.
func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}

		require.Len(t, family.GetMetric(), 1)

		return family.GetMetric()[0].GetGauge().GetValue()
	}

	t.Fatalf("metric %s not found", name)

	return 0
}
