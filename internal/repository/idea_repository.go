package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideahub/internal/model"
)

// IdeaRepository defines idea persistence operations. Mutations carry the
// ownership predicate in the statement itself and report affected rows, so
// authorization and write happen atomically.
type IdeaRepository interface {
	Create(ctx context.Context, idea *model.Idea) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error)
	FindByIDOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Idea, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, params ListParams) ([]model.Idea, int64, error)
	ListAll(ctx context.Context, search string) ([]model.Idea, error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, title, description string) (int64, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}

type ideaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository creates a new idea repository.
func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

// ideaSearch matches the search term case-insensitively against title and
// description. Empty terms leave the query untouched.
func ideaSearch(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		like := "%" + strings.ToLower(search) + "%"
		return db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
}

// Create creates a new idea.
func (r *ideaRepository) Create(ctx context.Context, idea *model.Idea) error {
	return r.db.WithContext(ctx).Create(idea).Error
}

// FindByID finds an idea by ID regardless of owner, loading the author for
// the community detail view.
func (r *ideaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	var idea model.Idea
	if err := r.db.WithContext(ctx).Preload("CreatedBy").
		Where("id = ?", id).First(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// FindByIDOwned finds an idea scoped to its owner.
func (r *ideaRepository) FindByIDOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Idea, error) {
	var idea model.Idea
	if err := r.db.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", id, ownerID).
		First(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// ListByOwner returns one page of the owner's ideas plus the scoped total.
func (r *ideaRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, params ListParams) ([]model.Idea, int64, error) {
	scoped := r.db.WithContext(ctx).Model(&model.Idea{}).
		Where("created_by_id = ?", ownerID).
		Scopes(ideaSearch(params.Search))

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ideas []model.Idea
	if err := scoped.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&ideas).Error; err != nil {
		return nil, 0, err
	}
	return ideas, total, nil
}

// ListAll returns every idea with its author, newest first. This backs the
// community feed: searched but not paginated.
func (r *ideaRepository) ListAll(ctx context.Context, search string) ([]model.Idea, error) {
	var ideas []model.Idea
	if err := r.db.WithContext(ctx).
		Scopes(ideaSearch(search)).
		Preload("CreatedBy").
		Order("created_at DESC").
		Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

// UpdateOwned updates title and description in a single statement scoped to
// the owner and returns the number of affected rows.
func (r *ideaRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, title, description string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Idea{}).
		Where("id = ? AND created_by_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
		})
	return res.RowsAffected, res.Error
}

// DeleteOwned deletes an idea scoped to the owner and returns affected rows.
// Attached notes go with it.
func (r *ideaRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND created_by_id = ?", id, ownerID).Delete(&model.Idea{})
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		if rows == 0 {
			return nil
		}
		return tx.Where("idea_id = ?", id).Delete(&model.Note{}).Error
	})
	return rows, err
}
