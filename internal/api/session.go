package api

import "sync"

// Session is the single process-wide holder of the admin bearer token.
// It is set on login, cleared on logout or expiry, and injected into the
// Client at construction so no component re-reads credentials ad hoc.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession creates a session, optionally seeded with a token.
func NewSession(token string) *Session {
	return &Session{token: token}
}

// SetToken installs a new bearer token.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the current bearer token, empty if unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear drops the token, e.g. after the backend reports 401.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
