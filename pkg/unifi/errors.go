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
	"errors"
	"fmt"
)

var (
	// ErrTransport matches requests that could not complete (DNS, refused, timeout, TLS).
	ErrTransport = errors.New("controller unreachable")
	// ErrUnexpectedStatus matches responses with a status other than 200.
	ErrUnexpectedStatus = errors.New("unexpected controller status")
	// ErrDecodeResponse matches 200 responses whose body could not be decoded.
	ErrDecodeResponse = errors.New("failed to decode controller response")
)

// StatusError reports a non-200 response.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

func (*StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// TransportError reports a request that never produced a response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (*TransportError) Is(target error) bool {
	return target == ErrTransport
}
