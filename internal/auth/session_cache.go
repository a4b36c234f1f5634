package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"ideahub/internal/cache"
	"ideahub/internal/model"
)

const sessionKeyPrefix = "session:"

// SessionCache keeps session lookups out of the database on the hot path.
// Entries are a snapshot of the session row; the cache inherits the client's
// fail-safe behavior, so a cold or down Redis just means a DB read.
type SessionCache struct {
	cache *cache.Client
}

// NewSessionCache creates a session cache on top of the shared Redis client.
func NewSessionCache(cache *cache.Client) *SessionCache {
	return &SessionCache{cache: cache}
}

type sessionEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Store caches a session under its token until the session expires.
func (c *SessionCache) Store(ctx context.Context, session *model.Session) error {
	entry := sessionEntry{
		ID:        session.ID,
		UserID:    session.UserID,
		IPAddress: session.IPAddress,
		UserAgent: session.UserAgent,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return c.cache.Set(ctx, sessionKeyPrefix+session.Token, payload, ttl)
}

// Get returns the cached session for a token, or nil on a miss.
func (c *SessionCache) Get(ctx context.Context, token string) (*model.Session, error) {
	data, err := c.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil || data == nil {
		return nil, err
	}
	var entry sessionEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// treat a corrupt entry as a miss
		return nil, nil
	}
	return &model.Session{
		ID:        entry.ID,
		Token:     token,
		UserID:    entry.UserID,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		ExpiresAt: entry.ExpiresAt,
		CreatedAt: entry.CreatedAt,
	}, nil
}

// Delete drops a token from the cache, typically on revocation.
func (c *SessionCache) Delete(ctx context.Context, token string) error {
	return c.cache.Delete(ctx, sessionKeyPrefix+token)
}
