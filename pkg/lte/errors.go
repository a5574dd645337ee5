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
	"errors"
	"fmt"
)

var (
	// ErrNoSignalDigit is returned when the signal text carries no bar count.
	ErrNoSignalDigit = errors.New("signal text contains no digit")
	// ErrNotNumeric is returned when a numeric field holds a non-numeric value.
	ErrNotNumeric = errors.New("value is not numeric")
)

// FieldError scopes a mapping failure to a single field of a single record.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s (%v): %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
