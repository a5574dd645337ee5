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

package poller

//go:generate mockgen -destination=mock_interfaces.go -package=poller github.com/carverauto/unifi-lte-exporter/pkg/poller ControllerClient,Sleeper

import (
	"context"
	"time"

	"github.com/carverauto/unifi-lte-exporter/pkg/unifi"
)

// ControllerClient is the subset of *unifi.Client the loop drives.
type ControllerClient interface {
	FetchDevices(ctx context.Context, session *unifi.Session) (*unifi.DeviceListResponse, error)
	Login(ctx context.Context, username, password string) (*unifi.Session, error)
}

// Sleeper waits between cycles. Sleep returns early with ctx.Err() when the
// context is cancelled.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}
