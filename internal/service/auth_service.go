package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ideahub/internal/auth"
	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an already used email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidSession is returned when a session token is unknown or expired.
	ErrInvalidSession = errors.New("invalid or expired session")
	// ErrSocialLoginDisabled is returned when GitHub login is not configured.
	ErrSocialLoginDisabled = errors.New("social login is not configured")
	// ErrLastAccount is returned when unlinking would leave the user with no
	// way to sign in.
	ErrLastAccount = errors.New("cannot unlink the only linked account")
)

// AuthService handles registration, login, sessions, and linked accounts.
type AuthService interface {
	Register(ctx context.Context, name, email, password, ip, userAgent string) (string, *model.User, error)
	Login(ctx context.Context, email, password, ip, userAgent string) (string, *model.User, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (*model.User, *model.Session, error)
	ListSessions(ctx context.Context, userID uuid.UUID) ([]model.Session, error)
	RevokeSession(ctx context.Context, userID, sessionID uuid.UUID) error
	RevokeOtherSessions(ctx context.Context, userID uuid.UUID, keepToken string) error
	GitHubAuthURL(ctx context.Context) (string, error)
	GitHubCallback(ctx context.Context, code, state, ip, userAgent string) (string, *model.User, error)
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]model.Account, error)
	UnlinkAccount(ctx context.Context, userID uuid.UUID, provider string) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	users        repository.UserRepository
	accounts     repository.AccountRepository
	sessions     repository.SessionRepository
	sessionCache *auth.SessionCache
	state        *auth.StateSigner
	github       *auth.GitHubOAuth
	sessionTTL   time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	accounts repository.AccountRepository,
	sessions repository.SessionRepository,
	sessionCache *auth.SessionCache,
	state *auth.StateSigner,
	github *auth.GitHubOAuth,
	sessionTTL time.Duration,
) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = auth.DefaultSessionExpiry
	}
	return &authService{
		users:        users,
		accounts:     accounts,
		sessions:     sessions,
		sessionCache: sessionCache,
		state:        state,
		github:       github,
		sessionTTL:   sessionTTL,
	}
}

// Register creates a user with a credential account and opens a session.
func (s *authService) Register(ctx context.Context, name, email, password, ip, userAgent string) (string, *model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", nil, ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return "", nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}
	hash := string(hashed)

	user := &model.User{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
	}

	// One transaction: a user without a credential account would be
	// unregisterable (email taken) yet unloginable.
	if err := s.users.WithTransaction(ctx, func(ctx context.Context, users repository.UserRepository, accounts repository.AccountRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if err := accounts.Create(ctx, &model.Account{
			UserID:       user.ID,
			ProviderID:   model.ProviderCredential,
			AccountID:    user.ID.String(),
			PasswordHash: &hash,
		}); err != nil {
			return fmt.Errorf("create credential account: %w", err)
		}
		return nil
	}); err != nil {
		return "", nil, err
	}

	token, err := s.openSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies credentials and opens a session.
func (s *authService) Login(ctx context.Context, email, password, ip, userAgent string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	// A social-only user has no credential account.
	account, err := s.accounts.FindByUserAndProvider(ctx, user.ID, model.ProviderCredential)
	if err != nil || account.PasswordHash == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout revokes the session behind the token.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return s.sessionCache.Delete(ctx, token)
}

// ResolveSession loads the session behind a token (cache first) and its user.
// Expired sessions are rejected and cleaned up.
func (s *authService) ResolveSession(ctx context.Context, token string) (*model.User, *model.Session, error) {
	session, _ := s.sessionCache.Get(ctx, token)
	if session == nil {
		var err error
		session, err = s.sessions.FindByToken(ctx, token)
		if err != nil {
			return nil, nil, ErrInvalidSession
		}
		_ = s.sessionCache.Store(ctx, session)
	}

	if session.Expired() {
		_ = s.sessions.DeleteByToken(ctx, token)
		_ = s.sessionCache.Delete(ctx, token)
		return nil, nil, ErrInvalidSession
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, ErrInvalidSession
	}
	return user, session, nil
}

// ListSessions returns the user's sessions.
func (s *authService) ListSessions(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// RevokeSession revokes one of the user's own sessions.
func (s *authService) RevokeSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := s.sessions.FindByID(ctx, sessionID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrSessionNotFound
		}
		return err
	}

	rows, err := s.sessions.Delete(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.ErrSessionNotFound
	}
	return s.sessionCache.Delete(ctx, session.Token)
}

// RevokeOtherSessions revokes every session except the current one.
func (s *authService) RevokeOtherSessions(ctx context.Context, userID uuid.UUID, keepToken string) error {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, session := range sessions {
		if session.Token != keepToken {
			_ = s.sessionCache.Delete(ctx, session.Token)
		}
	}
	return s.sessions.DeleteOthers(ctx, userID, keepToken)
}

// GitHubAuthURL returns the GitHub authorization URL with a signed state.
func (s *authService) GitHubAuthURL(ctx context.Context) (string, error) {
	if !s.github.Enabled() {
		return "", ErrSocialLoginDisabled
	}
	state, err := s.state.Sign()
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return s.github.AuthURL(state), nil
}

// GitHubCallback completes the GitHub flow: verify state, exchange the code,
// link or create the user, open a session. An existing user with the same
// email gets the GitHub account linked rather than duplicated.
func (s *authService) GitHubCallback(ctx context.Context, code, state, ip, userAgent string) (string, *model.User, error) {
	if !s.github.Enabled() {
		return "", nil, ErrSocialLoginDisabled
	}
	if err := s.state.Verify(state); err != nil {
		return "", nil, auth.ErrInvalidState
	}

	token, err := s.github.Exchange(ctx, code)
	if err != nil {
		return "", nil, err
	}
	ghUser, err := s.github.FetchUser(ctx, token)
	if err != nil {
		return "", nil, err
	}

	user, err := s.resolveGitHubUser(ctx, ghUser)
	if err != nil {
		return "", nil, err
	}

	sessionToken, err := s.openSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		return "", nil, err
	}
	return sessionToken, user, nil
}

// ListAccounts returns the user's linked accounts.
func (s *authService) ListAccounts(ctx context.Context, userID uuid.UUID) ([]model.Account, error) {
	return s.accounts.ListByUser(ctx, userID)
}

// UnlinkAccount removes a linked account unless it is the user's last one.
// The guard and the delete run in a single repository call so concurrent
// unlinks cannot both pass the count check.
func (s *authService) UnlinkAccount(ctx context.Context, userID uuid.UUID, provider string) error {
	deleted, total, err := s.accounts.DeleteByUserAndProvider(ctx, userID, provider)
	if err != nil {
		return err
	}
	if total <= 1 {
		return ErrLastAccount
	}
	if deleted == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// PurgeExpiredSessions removes every expired session row. ResolveSession only
// cleans up a session when its own token is presented, so the server sweeps
// the rest periodically.
func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx)
}

func (s *authService) openSession(ctx context.Context, userID uuid.UUID, ip, userAgent string) (string, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	session := &model.Session{
		Token:     token,
		UserID:    userID,
		IPAddress: ip,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	_ = s.sessionCache.Store(ctx, session)
	return token, nil
}

func (s *authService) resolveGitHubUser(ctx context.Context, ghUser *auth.GitHubUser) (*model.User, error) {
	ghAccountID := strconv.FormatInt(ghUser.ID, 10)

	account, err := s.accounts.FindByProviderAccount(ctx, model.ProviderGitHub, ghAccountID)
	if err == nil {
		return s.users.FindByID(ctx, account.UserID)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("lookup github account: %w", err)
	}

	user, err := s.users.FindByEmail(ctx, ghUser.Email)
	if err == gorm.ErrRecordNotFound {
		user = &model.User{
			ID:    uuid.New(),
			Name:  ghUser.Name,
			Email: ghUser.Email,
		}
		if ghUser.AvatarURL != "" {
			user.Image = &ghUser.AvatarURL
		}
		// New user and its GitHub account land together or not at all.
		if err := s.users.WithTransaction(ctx, func(ctx context.Context, users repository.UserRepository, accounts repository.AccountRepository) error {
			if err := users.Create(ctx, user); err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			return accounts.Create(ctx, &model.Account{
				UserID:     user.ID,
				ProviderID: model.ProviderGitHub,
				AccountID:  ghAccountID,
			})
		}); err != nil {
			return nil, fmt.Errorf("create github user: %w", err)
		}
		return user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	if err := s.accounts.Create(ctx, &model.Account{
		UserID:     user.ID,
		ProviderID: model.ProviderGitHub,
		AccountID:  ghAccountID,
	}); err != nil {
		return nil, fmt.Errorf("link github account: %w", err)
	}
	return user, nil
}
