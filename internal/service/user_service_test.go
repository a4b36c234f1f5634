package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository. TxAccounts is
// handed to WithTransaction callbacks so tests can observe account writes that
// run inside the transaction.
type MockUserRepository struct {
	mock.Mock
	TxAccounts repository.AccountRepository
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, params repository.ListParams) ([]model.User, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockUserRepository) SetVerification(ctx context.Context, id uuid.UUID, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *MockUserRepository) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	args := m.Called(ctx, id, isAdmin)
	return args.Error(0)
}

func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, users repository.UserRepository, accounts repository.AccountRepository) error) error {
	return fn(ctx, m, m.TxAccounts)
}

func TestUserService_List(t *testing.T) {
	users := []model.User{
		{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"},
		{ID: uuid.New(), Name: "Toni", Email: "toni@example.com"},
	}

	mockRepo := new(MockUserRepository)
	normalized := repository.ListParams{Search: "example", Page: 1, Limit: 10}
	mockRepo.On("List", mock.Anything, normalized).Return(users, int64(2), nil)

	service := NewUserService(mockRepo)
	result, err := service.List(context.Background(), repository.ListParams{Search: "example"})

	assert.NoError(t, err)
	assert.Len(t, result.Users, 2)
	assert.Equal(t, 1, result.Pagination.TotalPages)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "rename succeeds",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Name: "Old"}, nil).Once()
				m.On("UpdateName", mock.Anything, userID, "New Name").Return(nil)
				m.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Name: "New Name"}, nil).Once()
			},
		},
		{
			name: "unknown user maps to not found",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo)
			user, err := service.UpdateProfile(context.Background(), userID, "New Name")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "New Name", user.Name)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_SetVerification(t *testing.T) {
	userID := uuid.New()

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil).Once()
	mockRepo.On("SetVerification", mock.Anything, userID, true).Return(nil)
	mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, IsVerified: true}, nil).Once()

	service := NewUserService(mockRepo)
	user, err := service.SetVerification(context.Background(), userID, true)

	assert.NoError(t, err)
	assert.True(t, user.IsVerified)
	mockRepo.AssertExpectations(t)
}

func TestUserService_SetAdmin(t *testing.T) {
	adminID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name          string
		requesterID   uuid.UUID
		targetID      uuid.UUID
		isAdmin       bool
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:        "promote another user",
			requesterID: adminID,
			targetID:    otherID,
			isAdmin:     true,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, otherID).Return(&model.User{ID: otherID}, nil).Once()
				m.On("SetAdmin", mock.Anything, otherID, true).Return(nil)
				m.On("FindByID", mock.Anything, otherID).Return(&model.User{ID: otherID, IsAdmin: true}, nil).Once()
			},
		},
		{
			name:        "demote another admin",
			requesterID: adminID,
			targetID:    otherID,
			isAdmin:     false,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, otherID).Return(&model.User{ID: otherID, IsAdmin: true}, nil).Once()
				m.On("SetAdmin", mock.Anything, otherID, false).Return(nil)
				m.On("FindByID", mock.Anything, otherID).Return(&model.User{ID: otherID}, nil).Once()
			},
		},
		{
			name:        "self-demotion rejected before any write",
			requesterID: adminID,
			targetID:    adminID,
			isAdmin:     false,
			setupMock:   func(m *MockUserRepository) {},
			expectedError: errors.ErrSelfDemotion,
		},
		{
			name:        "self-promotion is a no-op but allowed",
			requesterID: adminID,
			targetID:    adminID,
			isAdmin:     true,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, adminID).Return(&model.User{ID: adminID, IsAdmin: true}, nil).Once()
				m.On("SetAdmin", mock.Anything, adminID, true).Return(nil)
				m.On("FindByID", mock.Anything, adminID).Return(&model.User{ID: adminID, IsAdmin: true}, nil).Once()
			},
		},
		{
			name:        "unknown target maps to not found",
			requesterID: adminID,
			targetID:    otherID,
			isAdmin:     true,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, otherID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo)
			user, err := service.SetAdmin(context.Background(), tt.requesterID, tt.targetID, tt.isAdmin)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.isAdmin, user.IsAdmin)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
