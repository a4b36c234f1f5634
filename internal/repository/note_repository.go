package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideahub/internal/model"
)

// NoteRepository defines note persistence operations. A note has no owner
// field of its own: every scoped operation derives ownership from the parent
// idea's creator, folded into the statement's WHERE clause.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	FindByIDOwned(ctx context.Context, id, requesterID uuid.UUID) (*model.Note, error)
	ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]model.Note, error)
	UpdateOwned(ctx context.Context, id, requesterID uuid.UUID, title, description string, noteType model.NoteType) (int64, error)
	DeleteOwned(ctx context.Context, id, requesterID uuid.UUID) (int64, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// Create creates a new note. Callers must have verified idea ownership.
func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// FindByIDOwned finds a note whose parent idea is owned by the requester.
func (r *noteRepository) FindByIDOwned(ctx context.Context, id, requesterID uuid.UUID) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).
		Joins("JOIN ideas ON ideas.id = notes.idea_id").
		Where("notes.id = ? AND ideas.created_by_id = ?", id, requesterID).
		First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByIdea returns all notes of an idea, newest first.
func (r *noteRepository) ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).
		Where("idea_id = ?", ideaID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateOwned updates a note in a single statement; the subquery restricts it
// to notes whose parent idea belongs to the requester.
func (r *noteRepository) UpdateOwned(ctx context.Context, id, requesterID uuid.UUID, title, description string, noteType model.NoteType) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Note{}).
		Where("id = ? AND idea_id IN (?)",
			id,
			r.db.Model(&model.Idea{}).Select("id").Where("created_by_id = ?", requesterID),
		).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
			"type":        noteType,
		})
	return res.RowsAffected, res.Error
}

// DeleteOwned deletes a note scoped through the parent idea's owner.
func (r *noteRepository) DeleteOwned(ctx context.Context, id, requesterID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND idea_id IN (?)",
			id,
			r.db.Model(&model.Idea{}).Select("id").Where("created_by_id = ?", requesterID),
		).
		Delete(&model.Note{})
	return res.RowsAffected, res.Error
}
