package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// DefaultSessionExpiry is the fallback session lifetime when no TTL is
// configured.
const DefaultSessionExpiry = 7 * 24 * time.Hour

const sessionTokenBytes = 32

// NewSessionToken returns a new opaque session token: 32 random bytes,
// hex-encoded to fit the 64-char unique column.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
