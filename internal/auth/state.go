package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// StateExpiry bounds how long an OAuth authorization round-trip may take.
const StateExpiry = 10 * time.Minute

// ErrInvalidState is returned when an OAuth state token fails verification.
var ErrInvalidState = errors.New("invalid or expired state")

// StateSigner issues and verifies the OAuth state parameter as a short-lived
// signed token, so the callback can detect forged or replayed redirects
// without server-side storage.
type StateSigner struct {
	secret []byte
}

// NewStateSigner creates a state signer with the given secret.
func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{secret: []byte(secret)}
}

// Sign returns a fresh state token.
func (s *StateSigner) Sign() (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(StateExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks a state token's signature and expiry.
func (s *StateSigner) Verify(state string) error {
	token, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidState
	}
	return nil
}
