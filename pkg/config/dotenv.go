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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
)

// DotEnvPaths returns the .env locations checked at startup: next to the
// executable, then the working directory.
func DotEnvPaths() []string {
	var paths []string

	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), ".env"))
	}

	paths = append(paths, ".env")

	return paths
}

// LoadDotEnv loads each existing file into the process environment. Variables
// that are already set are left alone. Missing files are skipped.
func LoadDotEnv(paths ...string) ([]string, error) {
	loaded := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}

		if _, dup := seen[abs]; dup {
			continue
		}

		seen[abs] = struct{}{}

		if _, err := os.Stat(abs); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			return loaded, fmt.Errorf("failed to stat %s: %w", abs, err)
		}

		if err := gotenv.Load(abs); err != nil {
			return loaded, fmt.Errorf("failed to load %s: %w", abs, err)
		}

		loaded = append(loaded, abs)
	}

	return loaded, nil
}
