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

package logger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Duration
		wantErr bool
	}{
		{input: `"5s"`, want: Duration(5 * time.Second)},
		{input: `5000000000`, want: Duration(5 * time.Second)},
		{input: `"1h30m45s"`, want: Duration(time.Hour + 30*time.Minute + 45*time.Second)},
		{input: `"soon"`, wantErr: true},
		{input: `true`, wantErr: true},
		{input: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestDurationMarshalJSON(t *testing.T) {
	out, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(out))
}

func TestOTelConfigFromJSON(t *testing.T) {
	raw := `{
		"enabled": true,
		"endpoint": "otel-collector:4317",
		"service_name": "unifi-lte-exporter",
		"batch_timeout": "10s",
		"insecure": true,
		"headers": {"x-api-key": "k"},
		"tls": {"ca_file": "/etc/ssl/otel-ca.pem"}
	}`

	var cfg OTelConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "otel-collector:4317", cfg.Endpoint)
	assert.Equal(t, "unifi-lte-exporter", cfg.ServiceName)
	assert.Equal(t, Duration(10*time.Second), cfg.BatchTimeout)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, map[string]string{"x-api-key": "k"}, cfg.Headers)
	require.NotNil(t, cfg.TLS)
	assert.Equal(t, "/etc/ssl/otel-ca.pem", cfg.TLS.CAFile)
}
