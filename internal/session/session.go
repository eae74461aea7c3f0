// Package session guards the validation service with a shared password.
package session

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// TokenParam is the query parameter accepted for clients that cannot set headers.
const TokenParam = "token"

// Session holds the shared password for the service. It is immutable and safe
// for concurrent use.
type Session struct {
	password string
}

// New returns a session guarded by password. An empty password disables auth.
func New(password string) *Session {
	return &Session{password: password}
}

// Enabled reports whether a password is required.
func (s *Session) Enabled() bool {
	return s.password != ""
}

// Authenticate checks a presented token against the password.
func (s *Session) Authenticate(token string) bool {
	if s.password == "" {
		return true
	}
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.password)) == 1
}

// Authorize checks the bearer token or the token query parameter of r.
func (s *Session) Authorize(r *http.Request) bool {
	return s.Authenticate(TokenFrom(r))
}

// TokenFrom extracts the presented credential from a request.
func TokenFrom(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get(TokenParam)
}
