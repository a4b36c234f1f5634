package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Idea is a startup idea owned by exactly one user. Description holds
// pre-sanitized rich-text HTML produced by the editor; the data layer treats
// it as an opaque string.
type Idea struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedByID uuid.UUID `json:"created_by_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	CreatedBy *User  `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Notes     []Note `json:"-" gorm:"foreignKey:IdeaID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
