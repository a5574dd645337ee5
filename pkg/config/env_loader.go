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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/unifi-lte-exporter/pkg/logger"
	"github.com/rs/zerolog"
)

var (
	// ErrDstMustBeNonNilPointer indicates that the destination must be a non-nil pointer.
	ErrDstMustBeNonNilPointer = errors.New("dst must be a non-nil pointer")
	// ErrDstMustBePointerToStruct indicates that the destination must be a pointer to a struct.
	ErrDstMustBePointerToStruct = errors.New("dst must be a pointer to a struct")

	errUnsupportedKind = errors.New("unsupported field kind")
)

// EnvConfigLoader loads configuration from environment variables named after
// json tags. Nested sections use underscore separation, so with the default
// prefix UNIFI_LTE_LOGGING_LEVEL maps to config.Logging.Level.
//
// Supported field kinds are the ones exporter configs are made of: strings,
// booleans, durations (Go syntax or whole seconds), comma separated string
// lists, JSON string maps and nested or optional sections.
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string
}

// NewEnvConfigLoader creates a new environment variable config loader.
func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{
		logger: log,
		prefix: prefix,
	}
}

// Load implements ConfigLoader. A complete JSON document in <prefix>CONFIG_JSON
// takes the place of the individual variables.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	if jsonConfig := os.Getenv(e.prefix + "CONFIG_JSON"); jsonConfig != "" {
		if err := json.Unmarshal([]byte(jsonConfig), dst); err != nil {
			return fmt.Errorf("failed to unmarshal %sCONFIG_JSON: %w", e.prefix, err)
		}

		e.debug().Msg("Loaded configuration from CONFIG_JSON environment variable")

		return nil
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	applied := e.loadSection(v, e.prefix)

	if len(applied) > 0 {
		e.debug().Strs("variables", applied).Msg("Applied environment overrides")
	}

	return nil
}

// loadSection walks the json-tagged fields of v and returns the names of the
// variables that were applied. Values are never logged.
func (e *EnvConfigLoader) loadSection(v reflect.Value, prefix string) []string {
	var applied []string

	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		envName := prefix + strings.ToUpper(name)

		switch {
		case field.Kind() == reflect.Struct:
			applied = append(applied, e.loadSection(field, envName+"_")...)

			continue
		case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
			if field.IsNil() {
				// optional sections stay nil unless something configures them
				if !hasEnvWithPrefix(envName + "_") {
					continue
				}

				field.Set(reflect.New(field.Type().Elem()))
			}

			applied = append(applied, e.loadSection(field.Elem(), envName+"_")...)

			continue
		}

		value, ok := os.LookupEnv(envName)
		if !ok || value == "" {
			continue
		}

		if err := setField(field, value); err != nil {
			e.warn().
				Str("env", envName).
				Err(err).
				Msg("Ignoring invalid environment override")

			continue
		}

		applied = append(applied, envName)
	}

	return applied
}

func setField(field reflect.Value, value string) error {
	switch {
	case field.Kind() == reflect.String:
		field.SetString(value)
	case field.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}

		field.SetBool(b)
	case isDurationType(field.Type()):
		d, err := parseDuration(value)
		if err != nil {
			return err
		}

		field.SetInt(int64(d))
	case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String:
		field.Set(reflect.ValueOf(splitList(value)).Convert(field.Type()))
	case field.Kind() == reflect.Map:
		return json.Unmarshal([]byte(value), field.Addr().Interface())
	default:
		return fmt.Errorf("%w: %s", errUnsupportedKind, field.Kind())
	}

	return nil
}

// parseDuration accepts Go duration syntax ("45s", "2m") or a bare number
// of seconds, the unit earlier deployments used for FREQ.
func parseDuration(value string) (time.Duration, error) {
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	return time.ParseDuration(value)
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// hasEnvWithPrefix reports whether any environment variable starts with prefix.
func hasEnvWithPrefix(prefix string) bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, prefix) {
			return true
		}
	}

	return false
}

// isDurationType matches time.Duration and the named Duration wrappers used
// in config structs.
func isDurationType(t reflect.Type) bool {
	return t.Kind() == reflect.Int64 && t.Name() == "Duration"
}

// debug and warn return nil events without a logger; zerolog treats
// those as disabled.
func (e *EnvConfigLoader) debug() *zerolog.Event {
	if e.logger == nil {
		return nil
	}

	return e.logger.Debug()
}

func (e *EnvConfigLoader) warn() *zerolog.Event {
	if e.logger == nil {
		return nil
	}

	return e.logger.Warn()
}
