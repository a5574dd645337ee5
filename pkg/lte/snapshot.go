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
	"slices"

	"github.com/carverauto/unifi-lte-exporter/pkg/unifi"
)

// Selection is the outcome of scanning one device list.
type Selection struct {
	// Snapshot is the last allow-listed record in array order, or nil.
	Snapshot *Snapshot
	Matches  int
	// Errors holds the field errors of the selected record only.
	Errors []error
}

// IsAllowedModel reports whether model is on the allow-list.
func IsAllowedModel(model string, allow []string) bool {
	return slices.Contains(allow, model)
}

// SelectSnapshot counts the allow-listed records and maps the last one.
// Only one device is reported per cycle; when several match, later entries
// win and earlier ones are not mapped at all.
func SelectSnapshot(records []unifi.DeviceRecord, allow []string) Selection {
	var (
		sel    Selection
		winner unifi.DeviceRecord
	)

	for _, record := range records {
		if !IsAllowedModel(stringField(record, "model"), allow) {
			continue
		}

		winner = record
		sel.Matches++
	}

	if sel.Matches > 0 {
		sel.Snapshot, sel.Errors = Map(winner)
	}

	return sel
}
