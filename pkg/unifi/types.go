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

// DeviceRecord is one raw device entry from the controller. The schema is
// owned by the controller, so fields are looked up by name.
type DeviceRecord map[string]any

// DeviceListResponse is the body of stat/device.
type DeviceListResponse struct {
	Meta ResponseMeta   `json:"meta"`
	Data []DeviceRecord `json:"data"`
}

// ResponseMeta is the envelope status the Network application attaches to responses.
type ResponseMeta struct {
	RC  string `json:"rc"`
	Msg string `json:"msg,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
