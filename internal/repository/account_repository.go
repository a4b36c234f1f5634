package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ideahub/internal/model"
)

// AccountRepository defines linked-account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByProviderAccount(ctx context.Context, providerID, accountID string) (*model.Account, error)
	FindByUserAndProvider(ctx context.Context, userID uuid.UUID, providerID string) (*model.Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Account, error)
	DeleteByUserAndProvider(ctx context.Context, userID uuid.UUID, providerID string) (deleted, total int64, err error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new linked account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// FindByProviderAccount finds an account by its provider-side identity.
func (r *accountRepository) FindByProviderAccount(ctx context.Context, providerID, accountID string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND account_id = ?", providerID, accountID).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByUserAndProvider finds a user's account for one provider.
func (r *accountRepository) FindByUserAndProvider(ctx context.Context, userID uuid.UUID, providerID string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, providerID).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// ListByUser returns all accounts linked to a user.
func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// DeleteByUserAndProvider unlinks one provider from a user, refusing to remove
// the user's only account. The user's account rows are locked while counted so
// concurrent unlinks cannot both pass the guard and strand the user. Returns
// the deleted row count and the total linked before the delete.
func (r *accountRepository) DeleteByUserAndProvider(ctx context.Context, userID uuid.UUID, providerID string) (int64, int64, error) {
	var deleted, total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var linked []model.Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Find(&linked).Error; err != nil {
			return err
		}
		total = int64(len(linked))
		if total <= 1 {
			return nil
		}

		res := tx.Where("user_id = ? AND provider_id = ?", userID, providerID).
			Delete(&model.Account{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, total, err
}
