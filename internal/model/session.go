package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a server-side login session. Token is the opaque bearer secret
// presented by the client; IP address and user agent are captured at login so
// users can review and revoke sessions from settings.
type Session struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Token     string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"size:512"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
