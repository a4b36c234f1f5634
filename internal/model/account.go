package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity providers an account can be linked to.
const (
	ProviderCredential = "credential"
	ProviderGitHub     = "github"
)

// Account links a user to one sign-in method. Credential accounts store the
// bcrypt password hash; social accounts store the provider-side account id.
type Account struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	ProviderID   string    `json:"provider_id" gorm:"size:32;not null;uniqueIndex:idx_provider_account"`
	AccountID    string    `json:"account_id" gorm:"size:255;not null;uniqueIndex:idx_provider_account"`
	PasswordHash *string   `json:"-" gorm:"size:255"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
