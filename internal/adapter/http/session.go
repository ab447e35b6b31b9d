package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// CookieName carries the session marker.
const CookieName = "auth_token"

const sessionLabel = "resume-formatter/session/v1"

// Sessions issues and checks the session marker: an HMAC of a fixed label
// under the configured secret. The marker holds no per-user state, so any
// instance with the same secret accepts it, and changing the secret revokes
// every session.
type Sessions struct {
	password string
	secret   []byte
}

func NewSessions(password, secret string) *Sessions {
	if secret == "" {
		secret = password
	}
	return &Sessions{password: password, secret: []byte(secret)}
}

// Configured reports whether a shared password is set.
func (s *Sessions) Configured() bool {
	return s.password != "" && len(s.secret) > 0
}

// CheckPassword compares candidate with the configured password in constant
// time.
func (s *Sessions) CheckPassword(candidate string) bool {
	if !s.Configured() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.password)) == 1
}

// Marker returns the session marker for the current secret.
func (s *Sessions) Marker() string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(sessionLabel))
	return hex.EncodeToString(mac.Sum(nil))
}

// Valid reports whether marker was issued under the current secret.
func (s *Sessions) Valid(marker string) bool {
	if !s.Configured() || marker == "" {
		return false
	}
	return hmac.Equal([]byte(marker), []byte(s.Marker()))
}
