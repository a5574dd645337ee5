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
	"net/http"
	"time"
)

// Session is the credential material returned by a successful login.
type Session struct {
	Cookies    []*http.Cookie
	CSRFToken  string
	ObtainedAt time.Time
}

// SessionStore holds the current session, if any. It performs no freshness
// checks; an expired session is only discovered by a failed request.
// It is not safe for concurrent use.
type SessionStore struct {
	current *Session
}

// Get returns the current session and whether one is set.
func (s *SessionStore) Get() (*Session, bool) {
	return s.current, s.current != nil
}

// Set replaces the current session.
func (s *SessionStore) Set(session *Session) {
	s.current = session
}
