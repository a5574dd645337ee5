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

import "errors"

var (
	errInvalidDuration = errors.New("invalid duration")

	// ErrHostnameRequired is returned when no controller hostname is configured.
	ErrHostnameRequired = errors.New("controller hostname is required")
	// ErrUsernameRequired is returned when no controller username is configured.
	ErrUsernameRequired = errors.New("controller username is required")
	// ErrPasswordRequired is returned when no controller password is configured.
	ErrPasswordRequired = errors.New("controller password is required")
	// ErrInvalidInterval is returned for non-positive poll, backoff, or timeout durations.
	ErrInvalidInterval = errors.New("interval must be positive")
	// ErrListenAddrRequired is returned when the metrics listen address is empty.
	ErrListenAddrRequired = errors.New("listen address is required")
	// ErrNoModels is returned when the model allow-list is empty.
	ErrNoModels = errors.New("at least one device model must be allowed")
	// ErrInvalidLegacyEnv is returned when PORT or FREQ is not an integer.
	ErrInvalidLegacyEnv = errors.New("invalid legacy environment value")
)
