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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carverauto/unifi-lte-exporter/pkg/logger"
	"github.com/carverauto/unifi-lte-exporter/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearLegacyEnv blanks the unprefixed variables so tests that rely on
// a missing value are not satisfied by the developer's shell.
func clearLegacyEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{"HOSTNAME", "USERNAME", "PASSWORD", "PORT", "FREQ", "CONFIG_SOURCE", "CONFIG_ENV_PREFIX"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFileThenPrefixedEnv(t *testing.T) {
	clearLegacyEnv(t)

	path := writeFile(t, t.TempDir(), "exporter.json", `{
		"hostname": "from-file",
		"username": "file-user",
		"password": "file-pass",
		"poll_interval": "45s"
	}`)

	t.Setenv("UNIFI_LTE_USERNAME", "env-user")
	t.Setenv("UNIFI_LTE_AUTH_BACKOFF", "2m")
	t.Setenv("UNIFI_LTE_MODELS", "ULTEUS, ULTEPEU")
	t.Setenv("UNIFI_LTE_LOGGING_LEVEL", "debug")

	cfg := models.DefaultExporterConfig()
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, cfg))

	assert.Equal(t, "from-file", cfg.Hostname)
	assert.Equal(t, "env-user", cfg.Username)
	assert.Equal(t, 45*time.Second, cfg.PollInterval.Std())
	assert.Equal(t, 2*time.Minute, cfg.AuthBackoff.Std())
	assert.Equal(t, []string{"ULTEUS", "ULTEPEU"}, cfg.Models)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Nil(t, cfg.Telemetry, "unconfigured optional sections stay nil")
}

func TestLegacyEnvBelowPrefixedEnv(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("HOSTNAME", "legacy-host")
	t.Setenv("USERNAME", "legacy-user")
	t.Setenv("PASSWORD", "legacy-pass")
	t.Setenv("FREQ", "10")
	t.Setenv("UNIFI_LTE_HOSTNAME", "prefixed-host")

	cfg := models.DefaultExporterConfig()
	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), "", cfg))

	assert.Equal(t, "prefixed-host", cfg.Hostname)
	assert.Equal(t, "legacy-user", cfg.Username)
	assert.Equal(t, 10*time.Second, cfg.PollInterval.Std())
}

func TestFileOverridesAmbientHostname(t *testing.T) {
	clearLegacyEnv(t)
	// container runtimes set HOSTNAME to the container id
	t.Setenv("HOSTNAME", "3f2a9c1b7e44")
	t.Setenv("USERNAME", "shell-user")
	t.Setenv("FREQ", "10")

	path := writeFile(t, t.TempDir(), "exporter.json", `{
		"hostname": "unifi.lan",
		"username": "exporter",
		"password": "s3cret"
	}`)

	cfg := models.DefaultExporterConfig()
	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), path, cfg))

	assert.Equal(t, "unifi.lan", cfg.Hostname)
	assert.Equal(t, "exporter", cfg.Username)
	assert.Equal(t, 10*time.Second, cfg.PollInterval.Std(), "legacy values still fill keys the file leaves out")
}

func TestLegacyEnvInvalidPortIsFatal(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("PORT", "nine-thousand")

	cfg := models.DefaultExporterConfig()
	err := NewConfig(nil).Load(context.Background(), "", cfg)

	require.ErrorIs(t, err, models.ErrInvalidLegacyEnv)
}

func TestLoadAndValidateMissingCredentials(t *testing.T) {
	clearLegacyEnv(t)

	cfg := models.DefaultExporterConfig()
	err := NewConfig(nil).LoadAndValidate(context.Background(), "", cfg)

	require.ErrorIs(t, err, models.ErrHostnameRequired)
}

func TestConfigSourceEnvSkipsFile(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("CONFIG_SOURCE", "env")

	cfg := models.DefaultExporterConfig()
	err := NewConfig(nil).Load(context.Background(), "/does/not/exist.json", cfg)

	require.NoError(t, err)
}

func TestInvalidConfigSource(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("CONFIG_SOURCE", "kv")

	err := NewConfig(nil).Load(context.Background(), "", models.DefaultExporterConfig())

	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestMissingFile(t *testing.T) {
	clearLegacyEnv(t)

	err := NewConfig(nil).Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"), models.DefaultExporterConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestEnvLoaderOptionalSection(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("UNIFI_LTE_TELEMETRY_EXPORT_INTERVAL", "15s")
	t.Setenv("UNIFI_LTE_TELEMETRY_METRICS_ENABLED", "true")
	t.Setenv("UNIFI_LTE_TELEMETRY_METRICS_ENDPOINT", "otel-collector:4317")

	cfg := models.DefaultExporterConfig()
	require.NoError(t, NewEnvConfigLoader(nil, DefaultEnvPrefix).Load(context.Background(), "", cfg))

	require.NotNil(t, cfg.Telemetry)
	assert.Equal(t, 15*time.Second, cfg.Telemetry.ExportInterval.Std())
	require.NotNil(t, cfg.Telemetry.Metrics)
	assert.True(t, cfg.Telemetry.Metrics.Enabled)
	assert.Equal(t, "otel-collector:4317", cfg.Telemetry.Metrics.Endpoint)
	assert.Nil(t, cfg.Telemetry.Tracing)
}

func TestEnvLoaderInvalidValueIgnored(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("UNIFI_LTE_INSECURE_SKIP_VERIFY", "maybe")

	cfg := models.DefaultExporterConfig()
	require.NoError(t, NewEnvConfigLoader(logger.NewTestLogger(), DefaultEnvPrefix).Load(context.Background(), "", cfg))

	assert.True(t, cfg.InsecureSkipVerify)
}

func TestEnvLoaderFieldKinds(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("UNIFI_LTE_POLL_INTERVAL", "15")
	t.Setenv("UNIFI_LTE_REQUEST_TIMEOUT", "1500ms")
	t.Setenv("UNIFI_LTE_MODELS", "ULTEUS,, ")
	t.Setenv("UNIFI_LTE_INSECURE_SKIP_VERIFY", "false")
	t.Setenv("UNIFI_LTE_LOGGING_OTEL_HEADERS", `{"x-api-key":"k"}`)
	t.Setenv("UNIFI_LTE_LOGGING_OTEL_BATCH_TIMEOUT", "2s")

	cfg := models.DefaultExporterConfig()
	require.NoError(t, NewEnvConfigLoader(logger.NewTestLogger(), DefaultEnvPrefix).Load(context.Background(), "", cfg))

	assert.Equal(t, 15*time.Second, cfg.PollInterval.Std(), "bare numbers are seconds")
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout.Std())
	assert.Equal(t, []string{"ULTEUS"}, cfg.Models)
	assert.False(t, cfg.InsecureSkipVerify)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, map[string]string{"x-api-key": "k"}, cfg.Logging.OTel.Headers)
	assert.Equal(t, logger.Duration(2*time.Second), cfg.Logging.OTel.BatchTimeout)
}

func TestEnvLoaderConfigJSON(t *testing.T) {
	t.Setenv("UNIFI_LTE_CONFIG_JSON", `{"hostname":"json-host","site":"branch"}`)

	cfg := models.DefaultExporterConfig()
	require.NoError(t, NewEnvConfigLoader(nil, DefaultEnvPrefix).Load(context.Background(), "", cfg))

	assert.Equal(t, "json-host", cfg.Hostname)
	assert.Equal(t, "branch", cfg.Site)
}

func TestEnvLoaderRejectsNonPointer(t *testing.T) {
	err := NewEnvConfigLoader(nil, DefaultEnvPrefix).Load(context.Background(), "", models.ExporterConfig{})

	require.ErrorIs(t, err, ErrDstMustBeNonNilPointer)
}

func TestLoadDotEnv(t *testing.T) {
	clearLegacyEnv(t)

	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "UNIFI_LTE_SITE=warehouse\nUNIFI_LTE_USERNAME=dotenv-user\n")

	t.Setenv("UNIFI_LTE_SITE", "")
	t.Setenv("UNIFI_LTE_USERNAME", "real-env-user")
	require.NoError(t, os.Unsetenv("UNIFI_LTE_SITE"))

	loaded, err := LoadDotEnv(path, filepath.Join(dir, "missing.env"), path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, loaded)

	assert.Equal(t, "warehouse", os.Getenv("UNIFI_LTE_SITE"))
	assert.Equal(t, "real-env-user", os.Getenv("UNIFI_LTE_USERNAME"), "existing variables win over .env")
}

func TestDotEnvPaths(t *testing.T) {
	paths := DotEnvPaths()

	require.NotEmpty(t, paths)
	assert.Equal(t, ".env", paths[len(paths)-1])
}
