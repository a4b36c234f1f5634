package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideahub/internal/cache"
	"ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/repository"
)

const ideaCacheTTL = 5 * time.Minute

// IdeaList is one page of a user's ideas.
type IdeaList struct {
	Ideas      []model.Idea          `json:"ideas"`
	Pagination repository.Pagination `json:"pagination"`
}

// IdeaService handles idea operations.
type IdeaService interface {
	List(ctx context.Context, ownerID uuid.UUID, params repository.ListParams) (*IdeaList, error)
	Feed(ctx context.Context, search string) ([]model.Idea, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Idea, error)
	Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.Idea, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, title, description string) (*model.Idea, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type ideaService struct {
	repo  repository.IdeaRepository
	cache *cache.Client
}

// NewIdeaService creates a new idea service.
func NewIdeaService(repo repository.IdeaRepository, cache *cache.Client) IdeaService {
	return &ideaService{repo: repo, cache: cache}
}

func (s *ideaService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("idea:%s", id.String())
}

// List returns one page of the owner's ideas.
func (s *ideaService) List(ctx context.Context, ownerID uuid.UUID, params repository.ListParams) (*IdeaList, error) {
	params.Normalize()

	ideas, total, err := s.repo.ListByOwner(ctx, ownerID, params)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	return &IdeaList{
		Ideas:      ideas,
		Pagination: repository.NewPagination(params, total),
	}, nil
}

// Feed returns the community feed: every idea with its author, optionally
// searched, newest first.
func (s *ideaService) Feed(ctx context.Context, search string) ([]model.Idea, error) {
	return s.repo.ListAll(ctx, search)
}

// Get returns an idea with its author, cached for the community detail view.
func (s *ideaService) Get(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Idea
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	idea, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrIdeaNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(idea); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, ideaCacheTTL)
	}
	return idea, nil
}

// Create stores a new idea for the owner.
func (s *ideaService) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.Idea, error) {
	idea := &model.Idea{
		Title:       title,
		Description: description,
		CreatedByID: ownerID,
	}
	if err := s.repo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	return idea, nil
}

// Update rewrites title and description. The ownership predicate rides in the
// UPDATE statement; zero affected rows means not found (or not yours, which
// reports the same).
func (s *ideaService) Update(ctx context.Context, id, ownerID uuid.UUID, title, description string) (*model.Idea, error) {
	rows, err := s.repo.UpdateOwned(ctx, id, ownerID, title, description)
	if err != nil {
		return nil, fmt.Errorf("update idea: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrIdeaNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return s.repo.FindByIDOwned(ctx, id, ownerID)
}

// Delete removes an idea and its notes.
func (s *ideaService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	rows, err := s.repo.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}
	if rows == 0 {
		return errors.ErrIdeaNotFound
	}
	return s.cache.Delete(ctx, s.cacheKey(id))
}
