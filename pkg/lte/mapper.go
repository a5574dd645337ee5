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

// Package lte maps raw controller device records for LTE backup devices into
// the fixed telemetry shape published by the exporter.
package lte

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/carverauto/unifi-lte-exporter/pkg/unifi"
)

const (
	// FieldSignal is free text such as "3 bars"; its first digit is the value.
	FieldSignal = "lte_signal"
	// FieldFailover is a boolean published as 1 or 0.
	FieldFailover = "lte_failover"
)

// NumericFields are published as one gauge each.
//
//nolint:gochecknoglobals // fixed schema
var NumericFields = []string{
	"lte_rx_chan",
	"lte_tx_chan",
	"lte_rssi",
	"lte_rsrq",
	"lte_rsrp",
	"total_tx_bytes",
	"total_rx_bytes",
	FieldSignal,
	"uptime",
	FieldFailover,
}

// TextFields are published together as the info metric.
//
//nolint:gochecknoglobals // fixed schema
var TextFields = []string{
	"lte_connected",
	"lte_imei",
	"lte_iccid",
	"lte_radio",
	"lte_ip",
	"lte_networkoperator",
	"lte_pdptype",
	"lte_rat",
	FieldSignal,
	"lte_mode",
	"lte_band",
	"lte_cell_id",
	"lte_radio_mode",
	"model",
	"name",
	"ip",
	"mac",
	"version",
	"license_state",
	"_id",
}

var signalDigit = regexp.MustCompile(`\d`) //nolint:gochecknoglobals // compiled once

// Identity is the label set attached to every numeric metric.
type Identity struct {
	ID    string
	Name  string
	Model string
}

// Snapshot is the telemetry extracted from one device record.
type Snapshot struct {
	Identity Identity
	Numeric  map[string]float64
	Text     map[string]string
}

// Map converts a raw record. Absent fields are omitted; a malformed field
// yields a *FieldError and is left out while the rest of the record is mapped.
func Map(record unifi.DeviceRecord) (*Snapshot, []error) {
	snap := &Snapshot{
		Identity: Identity{
			ID:    stringField(record, "_id"),
			Name:  stringField(record, "name"),
			Model: stringField(record, "model"),
		},
		Numeric: make(map[string]float64, len(NumericFields)),
		Text:    make(map[string]string, len(TextFields)),
	}

	var errs []error

	for _, field := range NumericFields {
		raw, ok := record[field]
		if !ok {
			continue
		}

		value, err := numericValue(field, raw)
		if err != nil {
			errs = append(errs, &FieldError{Field: field, Value: raw, Err: err})
			continue
		}

		snap.Numeric[field] = value
	}

	for _, field := range TextFields {
		raw, ok := record[field]
		if !ok {
			continue
		}

		snap.Text[field] = textValue(raw)
	}

	return snap, errs
}

func numericValue(field string, raw any) (float64, error) {
	switch field {
	case FieldSignal:
		return ParseSignal(textValue(raw))
	case FieldFailover:
		if b, ok := raw.(bool); ok {
			return BoolToFloat(b), nil
		}
	}

	return toFloat(raw)
}

// ParseSignal returns the first decimal digit in a signal description such
// as "3 bars".
func ParseSignal(text string) (float64, error) {
	digit := signalDigit.FindString(text)
	if digit == "" {
		return 0, ErrNoSignalDigit
	}

	return strconv.ParseFloat(digit, 64)
}

// BoolToFloat maps true to 1 and false to 0.
func BoolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return strconv.ParseFloat(v.String(), 64)
	case bool:
		return BoolToFloat(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, ErrNotNumeric
		}

		return f, nil
	default:
		return 0, ErrNotNumeric
	}
}

// textValue renders a raw value the way it reads in the controller's JSON.
func textValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}

		return string(b)
	}
}

func stringField(record unifi.DeviceRecord, key string) string {
	raw, ok := record[key]
	if !ok {
		return ""
	}

	return textValue(raw)
}
