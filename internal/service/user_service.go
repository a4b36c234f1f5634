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

// UserList is one page of users.
type UserList struct {
	Users      []model.User          `json:"users"`
	Pagination repository.Pagination `json:"pagination"`
}

// UserService handles profile edits and admin user management.
type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, params repository.ListParams) (*UserList, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name string) (*model.User, error)
	SetVerification(ctx context.Context, userID uuid.UUID, verified bool) (*model.User, error)
	SetAdmin(ctx context.Context, requesterID, userID uuid.UUID, isAdmin bool) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Get returns a user by ID.
func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns one page of users, searched over name and email.
func (s *userService) List(ctx context.Context, params repository.ListParams) (*UserList, error) {
	params.Normalize()

	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &UserList{
		Users:      users,
		Pagination: repository.NewPagination(params, total),
	}, nil
}

// UpdateProfile changes the user's own display name.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, name string) (*model.User, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateName(ctx, userID, name); err != nil {
		return nil, fmt.Errorf("update name: %w", err)
	}
	return s.repo.FindByID(ctx, userID)
}

// SetVerification flips a user's verification flag. Admin-only; the gate runs
// in middleware before this is reached.
func (s *userService) SetVerification(ctx context.Context, userID uuid.UUID, verified bool) (*model.User, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.SetVerification(ctx, userID, verified); err != nil {
		return nil, fmt.Errorf("set verification: %w", err)
	}
	return s.repo.FindByID(ctx, userID)
}

// SetAdmin flips a user's admin flag. An admin may not demote themself.
func (s *userService) SetAdmin(ctx context.Context, requesterID, userID uuid.UUID, isAdmin bool) (*model.User, error) {
	if requesterID == userID && !isAdmin {
		return nil, errors.ErrSelfDemotion
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.SetAdmin(ctx, userID, isAdmin); err != nil {
		return nil, fmt.Errorf("set admin: %w", err)
	}
	return s.repo.FindByID(ctx, userID)
}
