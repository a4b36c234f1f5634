package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideahub/internal/model"
)

// SessionRepository defines session persistence operations. Revocations are
// always scoped to the session's user so one user can never revoke another's
// session.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	FindByToken(ctx context.Context, token string) (*model.Session, error)
	FindByID(ctx context.Context, id, userID uuid.UUID) (*model.Session, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	Delete(ctx context.Context, id, userID uuid.UUID) (int64, error)
	DeleteOthers(ctx context.Context, userID uuid.UUID, keepToken string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new session.
func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByToken finds a session by its bearer token.
func (r *sessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByID finds a session by ID scoped to its user.
func (r *sessionRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// ListByUser returns the user's sessions, newest first.
func (r *sessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	var sessions []model.Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// DeleteByToken removes a session by its token.
func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error
}

// Delete removes a session by ID scoped to its user and returns affected rows.
func (r *sessionRepository) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Session{})
	return res.RowsAffected, res.Error
}

// DeleteOthers removes all of the user's sessions except the one identified
// by keepToken.
func (r *sessionRepository) DeleteOthers(ctx context.Context, userID uuid.UUID, keepToken string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token <> ?", userID, keepToken).
		Delete(&model.Session{}).Error
}

// DeleteExpired removes sessions past their expiry.
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
