package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideahub/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, params ListParams) ([]model.User, int64, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	SetVerification(ctx context.Context, id uuid.UUID, verified bool) error
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, accounts AccountRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func userSearch(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		like := "%" + strings.ToLower(search) + "%"
		return db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns one page of users plus the total, searched over name and email.
func (r *userRepository) List(ctx context.Context, params ListParams) ([]model.User, int64, error) {
	scoped := r.db.WithContext(ctx).Model(&model.User{}).
		Scopes(userSearch(params.Search))

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	if err := scoped.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateName changes the user's display name.
func (r *userRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("name", name).Error
}

// SetVerification flips the verification flag.
func (r *userRepository) SetVerification(ctx context.Context, id uuid.UUID, verified bool) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("is_verified", verified).Error
}

// SetAdmin flips the admin flag. The self-demotion guard lives in the service
// layer, before this statement runs.
func (r *userRepository) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("is_admin", isAdmin).Error
}

// WithTransaction runs fn with user and account repositories bound to a single
// transaction, so a user and its linked account are created atomically: if
// either insert fails, neither row remains.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, accounts AccountRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx}, NewAccountRepository(tx))
	})
}
