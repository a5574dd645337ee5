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

package lte

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/carverauto/unifi-lte-exporter/pkg/unifi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowed = []string{"ULTEPEU", "ULTEUS"}

func fullRecord() unifi.DeviceRecord {
	return unifi.DeviceRecord{
		"_id":                 "60a1f0c2e4b0",
		"name":                "LTE Backup",
		"model":               "ULTEUS",
		"ip":                  "10.0.0.20",
		"mac":                 "74:ac:b9:00:00:01",
		"version":             "1.2.3.4567",
		"license_state":       "activated",
		"lte_connected":       "yes",
		"lte_imei":            "356789012345678",
		"lte_iccid":           "8901260123456789012",
		"lte_radio":           "LTE",
		"lte_ip":              "100.64.12.7",
		"lte_networkoperator": "T-Mobile",
		"lte_pdptype":         "IPV4V6",
		"lte_rat":             "LTE",
		"lte_signal":          "4 bars",
		"lte_mode":            "failover",
		"lte_band":            "B66",
		"lte_cell_id":         "1a2b3c",
		"lte_radio_mode":      "LTE",
		"lte_rx_chan":         json.Number("66786"),
		"lte_tx_chan":         json.Number("132322"),
		"lte_rssi":            json.Number("-69"),
		"lte_rsrq":            json.Number("-11"),
		"lte_rsrp":            json.Number("-97"),
		"total_tx_bytes":      json.Number("123456789"),
		"total_rx_bytes":      json.Number("987654321"),
		"uptime":              json.Number("86400"),
		"lte_failover":        false,
		"board_rev":           json.Number("7"),
		"port_table":          []any{},
	}
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)

	return out
}

func TestMapFullRecord(t *testing.T) {
	snap, errs := Map(fullRecord())
	require.Empty(t, errs)

	assert.Equal(t, Identity{ID: "60a1f0c2e4b0", Name: "LTE Backup", Model: "ULTEUS"}, snap.Identity)
	assert.Equal(t, sorted(NumericFields), keys(snap.Numeric))
	assert.Equal(t, sorted(TextFields), keys(snap.Text))

	assert.InDelta(t, 4, snap.Numeric["lte_signal"], 0)
	assert.InDelta(t, 0, snap.Numeric["lte_failover"], 0)
	assert.InDelta(t, -69, snap.Numeric["lte_rssi"], 0)
	assert.InDelta(t, 987654321, snap.Numeric["total_rx_bytes"], 0)

	assert.Equal(t, "4 bars", snap.Text["lte_signal"])
	assert.Equal(t, "356789012345678", snap.Text["lte_imei"])
	assert.NotContains(t, snap.Text, "board_rev")
	assert.NotContains(t, snap.Numeric, "board_rev")
}

func TestMapAbsentFieldsOmitted(t *testing.T) {
	snap, errs := Map(unifi.DeviceRecord{"model": "ULTEPEU", "lte_rssi": float64(-80)})
	require.Empty(t, errs)

	assert.Equal(t, map[string]float64{"lte_rssi": -80}, snap.Numeric)
	assert.Equal(t, map[string]string{"model": "ULTEPEU"}, snap.Text)
	assert.Equal(t, Identity{Model: "ULTEPEU"}, snap.Identity)
}

func TestParseSignal(t *testing.T) {
	tests := []struct {
		text    string
		want    float64
		wantErr bool
	}{
		{text: "3 bars", want: 3},
		{text: "no signal 0", want: 0},
		{text: "5", want: 5},
		{text: "bars: 12", want: 1},
		{text: "no signal", wantErr: true},
		{text: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseSignal(tt.text)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoSignalDigit)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0)

			again, err := ParseSignal(tt.text)
			require.NoError(t, err)
			assert.InDelta(t, got, again, 0)
		})
	}
}

func TestMapSignalWithoutDigit(t *testing.T) {
	snap, errs := Map(unifi.DeviceRecord{
		"model":      "ULTEUS",
		"lte_signal": "searching",
		"lte_rssi":   json.Number("-90"),
	})

	require.Len(t, errs, 1)

	var fieldErr *FieldError

	require.ErrorAs(t, errs[0], &fieldErr)
	assert.Equal(t, "lte_signal", fieldErr.Field)
	assert.ErrorIs(t, errs[0], ErrNoSignalDigit)

	assert.NotContains(t, snap.Numeric, "lte_signal")
	assert.Equal(t, "searching", snap.Text["lte_signal"])
	assert.InDelta(t, -90, snap.Numeric["lte_rssi"], 0)
}

func TestMapFailover(t *testing.T) {
	for input, want := range map[bool]float64{true: 1, false: 0} {
		snap, errs := Map(unifi.DeviceRecord{"lte_failover": input})
		require.Empty(t, errs)
		assert.InDelta(t, want, snap.Numeric["lte_failover"], 0)
		assert.Equal(t, map[bool]string{true: "true", false: "false"}[input], textValue(input))
	}
}

func TestMapNumericCoercion(t *testing.T) {
	snap, errs := Map(unifi.DeviceRecord{
		"uptime":         "3600",
		"lte_rsrq":       -12.5,
		"total_tx_bytes": 42,
		"lte_rsrp":       "n/a",
		"lte_rx_chan":    nil,
	})

	assert.InDelta(t, 3600, snap.Numeric["uptime"], 0)
	assert.InDelta(t, -12.5, snap.Numeric["lte_rsrq"], 0)
	assert.InDelta(t, 42, snap.Numeric["total_tx_bytes"], 0)
	assert.NotContains(t, snap.Numeric, "lte_rsrp")
	assert.NotContains(t, snap.Numeric, "lte_rx_chan")

	require.Len(t, errs, 2)

	for _, err := range errs {
		assert.ErrorIs(t, err, ErrNotNumeric)
	}
}

func TestTextValue(t *testing.T) {
	assert.Equal(t, "1.5", textValue(1.5))
	assert.Equal(t, "7", textValue(7))
	assert.Equal(t, "12345678901234", textValue(json.Number("12345678901234")))
	assert.Equal(t, "", textValue(nil))
	assert.Equal(t, `{"a":1}`, textValue(map[string]any{"a": 1}))
}

func TestSelectSnapshotLastMatchWins(t *testing.T) {
	records := []unifi.DeviceRecord{
		{"_id": "first", "name": "lte-a", "model": "ULTEUS", "lte_rssi": json.Number("-60")},
		{"_id": "switch", "name": "core", "model": "USW24"},
		{"_id": "second", "name": "lte-b", "model": "ULTEPEU", "lte_rssi": json.Number("-75")},
	}

	sel := SelectSnapshot(records, allowed)

	require.NotNil(t, sel.Snapshot)
	assert.Equal(t, 2, sel.Matches)
	assert.Equal(t, Identity{ID: "second", Name: "lte-b", Model: "ULTEPEU"}, sel.Snapshot.Identity)
	assert.InDelta(t, -75, sel.Snapshot.Numeric["lte_rssi"], 0)
}

func TestSelectSnapshotNoMatch(t *testing.T) {
	sel := SelectSnapshot([]unifi.DeviceRecord{{"model": "U6LR"}, {"name": "no model"}}, allowed)

	assert.Nil(t, sel.Snapshot)
	assert.Zero(t, sel.Matches)
	assert.Empty(t, sel.Errors)
}

func TestSelectSnapshotReportsWinnerErrorsOnly(t *testing.T) {
	records := []unifi.DeviceRecord{
		{"_id": "first", "model": "ULTEUS", "lte_signal": "none"},
		{"_id": "second", "model": "ULTEUS", "uptime": "soon"},
	}

	sel := SelectSnapshot(records, allowed)

	require.NotNil(t, sel.Snapshot)
	assert.Equal(t, "second", sel.Snapshot.Identity.ID)
	require.Len(t, sel.Errors, 1)
	assert.ErrorIs(t, sel.Errors[0], ErrNotNumeric)

	var fieldErr *FieldError
	require.ErrorAs(t, sel.Errors[0], &fieldErr)
	assert.Equal(t, "uptime", fieldErr.Field)
}

func TestIsAllowedModel(t *testing.T) {
	assert.True(t, IsAllowedModel("ULTEUS", allowed))
	assert.True(t, IsAllowedModel("ULTEPEU", allowed))
	assert.False(t, IsAllowedModel("ulteus", allowed))
	assert.False(t, IsAllowedModel("", allowed))
	assert.False(t, IsAllowedModel("ULTEUS", nil))
}
