package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionToken(t *testing.T) {
	first, err := NewSessionToken()
	assert.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := NewSessionToken()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
