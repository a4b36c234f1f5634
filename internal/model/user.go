package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an application identity. The admin and verification flags are only
// mutable through admin procedures; Name is the single self-editable field.
type User struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name       string    `json:"name" gorm:"size:100;not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Image      *string   `json:"image,omitempty" gorm:"size:512"`
	IsAdmin    bool      `json:"is_admin" gorm:"default:false;index"`
	IsVerified bool      `json:"is_verified" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Ideas    []Idea    `json:"-" gorm:"foreignKey:CreatedByID"`
	Sessions []Session `json:"-" gorm:"foreignKey:UserID"`
	Accounts []Account `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
