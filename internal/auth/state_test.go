package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStateSigner_SignAndVerify(t *testing.T) {
	signer := NewStateSigner("test-secret")

	state, err := signer.Sign()
	assert.NoError(t, err)
	assert.NotEmpty(t, state)

	assert.NoError(t, signer.Verify(state))
}

func TestStateSigner_Verify(t *testing.T) {
	signer := NewStateSigner("test-secret")

	tests := []struct {
		name  string
		state func() string
	}{
		{
			name:  "garbage input",
			state: func() string { return "not-a-token" },
		},
		{
			name: "signed with a different secret",
			state: func() string {
				other := NewStateSigner("other-secret")
				s, _ := other.Sign()
				return s
			},
		},
		{
			name: "expired state",
			state: func() string {
				past := time.Now().Add(-2 * StateExpiry)
				claims := &jwt.RegisteredClaims{
					ID:        uuid.New().String(),
					ExpiresAt: jwt.NewNumericDate(past.Add(StateExpiry)),
					IssuedAt:  jwt.NewNumericDate(past),
				}
				s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
				return s
			},
		},
		{
			name: "unsigned token",
			state: func() string {
				claims := &jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(StateExpiry)),
				}
				s, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ErrInvalidState, signer.Verify(tt.state()))
		})
	}
}
