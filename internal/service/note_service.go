package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/repository"
)

// NoteService handles note operations. Every path is authorized transitively
// through the parent idea's owner; there is no direct owner on a note.
type NoteService interface {
	ListByIdea(ctx context.Context, ideaID, requesterID uuid.UUID) ([]model.Note, error)
	Get(ctx context.Context, id, requesterID uuid.UUID) (*model.Note, error)
	Create(ctx context.Context, requesterID, ideaID uuid.UUID, title, description string, noteType model.NoteType) (*model.Note, error)
	Update(ctx context.Context, id, requesterID uuid.UUID, title, description string, noteType model.NoteType) (*model.Note, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
}

type noteService struct {
	notes repository.NoteRepository
	ideas repository.IdeaRepository
}

// NewNoteService creates a new note service.
func NewNoteService(notes repository.NoteRepository, ideas repository.IdeaRepository) NoteService {
	return &noteService{notes: notes, ideas: ideas}
}

// ListByIdea returns the notes of an idea the requester owns.
func (s *noteService) ListByIdea(ctx context.Context, ideaID, requesterID uuid.UUID) ([]model.Note, error) {
	if _, err := s.ideas.FindByIDOwned(ctx, ideaID, requesterID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrIdeaNotFound
		}
		return nil, err
	}
	return s.notes.ListByIdea(ctx, ideaID)
}

// Get returns a note whose parent idea the requester owns.
func (s *noteService) Get(ctx context.Context, id, requesterID uuid.UUID) (*model.Note, error) {
	note, err := s.notes.FindByIDOwned(ctx, id, requesterID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

// Create attaches a note to an idea after verifying the requester owns it.
func (s *noteService) Create(ctx context.Context, requesterID, ideaID uuid.UUID, title, description string, noteType model.NoteType) (*model.Note, error) {
	if !noteType.Valid() {
		return nil, errors.ErrInvalidNoteType
	}

	if _, err := s.ideas.FindByIDOwned(ctx, ideaID, requesterID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrIdeaNotFound
		}
		return nil, err
	}

	note := &model.Note{
		IdeaID:      ideaID,
		Title:       title,
		Description: description,
		Type:        noteType,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// Update rewrites a note. The transitive ownership predicate rides in the
// UPDATE statement itself.
func (s *noteService) Update(ctx context.Context, id, requesterID uuid.UUID, title, description string, noteType model.NoteType) (*model.Note, error) {
	if !noteType.Valid() {
		return nil, errors.ErrInvalidNoteType
	}

	rows, err := s.notes.UpdateOwned(ctx, id, requesterID, title, description, noteType)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrNoteNotFound
	}
	return s.notes.FindByIDOwned(ctx, id, requesterID)
}

// Delete removes a note.
func (s *noteService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	rows, err := s.notes.DeleteOwned(ctx, id, requesterID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if rows == 0 {
		return errors.ErrNoteNotFound
	}
	return nil
}
