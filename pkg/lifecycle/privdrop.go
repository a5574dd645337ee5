//go:build unix

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

package lifecycle

import (
	"errors"
	"fmt"
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"
)

var (
	// ErrNotRoot is returned when a privilege drop is requested by a non-root process.
	ErrNotRoot = errors.New("privilege drop requires running as root")
	// ErrPrivilegesRetained is returned when the process still holds root after the drop.
	ErrPrivilegesRetained = errors.New("privileges were not dropped")
)

// DropPrivileges switches the process to username, including its
// supplementary groups. An empty username is a no-op.
func DropPrivileges(username string) error {
	if username == "" {
		return nil
	}

	if unix.Geteuid() != 0 {
		return fmt.Errorf("%w (euid %d)", ErrNotRoot, unix.Geteuid())
	}

	u, err := user.Lookup(username)
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return fmt.Errorf("invalid uid %q for %s: %w", u.Uid, username, err)
	}

	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return fmt.Errorf("invalid gid %q for %s: %w", u.Gid, username, err)
	}

	groups, err := supplementaryGroups(u, gid)
	if err != nil {
		return err
	}

	// order matters: groups and gid can only be changed while still root
	if err := unix.Setgroups(groups); err != nil {
		return fmt.Errorf("setgroups: %w", err)
	}

	if err := unix.Setgid(gid); err != nil {
		return fmt.Errorf("setgid %d: %w", gid, err)
	}

	if err := unix.Setuid(uid); err != nil {
		return fmt.Errorf("setuid %d: %w", uid, err)
	}

	if uid != 0 && (unix.Getuid() == 0 || unix.Geteuid() == 0) {
		return ErrPrivilegesRetained
	}

	return nil
}

func supplementaryGroups(u *user.User, primary int) ([]int, error) {
	ids, err := u.GroupIds()
	if err != nil {
		// some static builds cannot enumerate groups; fall back to the primary gid
		return []int{primary}, nil //nolint:nilerr // primary group is sufficient
	}

	groups := make([]int, 0, len(ids))

	for _, id := range ids {
		g, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("invalid group id %q: %w", id, err)
		}

		groups = append(groups, g)
	}

	return groups, nil
}
