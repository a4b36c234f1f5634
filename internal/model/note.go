package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteType is a closed categorization tag. It carries no workflow semantics.
type NoteType string

const (
	NoteTypeResearch   NoteType = "RESEARCH"
	NoteTypeMeeting    NoteType = "MEETING"
	NoteTypeFeedback   NoteType = "FEEDBACK"
	NoteTypeTask       NoteType = "TASK"
	NoteTypeBrainstorm NoteType = "BRAINSTORM"
	NoteTypeReference  NoteType = "REFERENCE"
)

// Valid reports whether t is one of the known note types.
func (t NoteType) Valid() bool {
	switch t {
	case NoteTypeResearch, NoteTypeMeeting, NoteTypeFeedback,
		NoteTypeTask, NoteTypeBrainstorm, NoteTypeReference:
		return true
	}
	return false
}

// Note is attached to exactly one idea. There is no owner field: authorization
// is always derived from the parent idea's creator.
type Note struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	IdeaID      uuid.UUID `json:"idea_id" gorm:"type:char(36);not null;index"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Type        NoteType  `json:"type" gorm:"size:20;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Idea *Idea `json:"-" gorm:"foreignKey:IdeaID"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
