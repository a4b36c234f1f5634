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

// MockIdeaRepository is a mock implementation of IdeaRepository.
type MockIdeaRepository struct {
	mock.Mock
}

func (m *MockIdeaRepository) Create(ctx context.Context, idea *model.Idea) error {
	args := m.Called(ctx, idea)
	return args.Error(0)
}

func (m *MockIdeaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Idea), args.Error(1)
}

func (m *MockIdeaRepository) FindByIDOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Idea, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Idea), args.Error(1)
}

func (m *MockIdeaRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, params repository.ListParams) ([]model.Idea, int64, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Idea), args.Get(1).(int64), args.Error(2)
}

func (m *MockIdeaRepository) ListAll(ctx context.Context, search string) ([]model.Idea, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Idea), args.Error(1)
}

func (m *MockIdeaRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, title, description string) (int64, error) {
	args := m.Called(ctx, id, ownerID, title, description)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIdeaRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func TestIdeaService_Create(t *testing.T) {
	ownerID := uuid.New()

	mockRepo := new(MockIdeaRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Idea")).Return(nil)

	service := NewIdeaService(mockRepo, nil)
	idea, err := service.Create(context.Background(), ownerID, "Solar kiosks", "<p>Off-grid charging kiosks</p>")

	assert.NoError(t, err)
	assert.NotNil(t, idea)
	assert.Equal(t, "Solar kiosks", idea.Title)
	assert.Equal(t, ownerID, idea.CreatedByID)
	mockRepo.AssertExpectations(t)
}

func TestIdeaService_List(t *testing.T) {
	ownerID := uuid.New()
	ideas := []model.Idea{
		{ID: uuid.New(), Title: "First", CreatedByID: ownerID},
		{ID: uuid.New(), Title: "Second", CreatedByID: ownerID},
	}

	mockRepo := new(MockIdeaRepository)
	normalized := repository.ListParams{Page: 1, Limit: 10}
	mockRepo.On("ListByOwner", mock.Anything, ownerID, normalized).Return(ideas, int64(12), nil)

	service := NewIdeaService(mockRepo, nil)

	// Zero params must be normalized before they reach the repository.
	result, err := service.List(context.Background(), ownerID, repository.ListParams{})

	assert.NoError(t, err)
	assert.Len(t, result.Ideas, 2)
	assert.Equal(t, int64(12), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	mockRepo.AssertExpectations(t)
}

func TestIdeaService_Get(t *testing.T) {
	ideaID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockIdeaRepository)
		expectedError error
	}{
		{
			name: "found",
			setupMock: func(m *MockIdeaRepository) {
				m.On("FindByID", mock.Anything, ideaID).Return(&model.Idea{ID: ideaID, Title: "Found"}, nil)
			},
			expectedError: nil,
		},
		{
			name: "missing idea maps to not found",
			setupMock: func(m *MockIdeaRepository) {
				m.On("FindByID", mock.Anything, ideaID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrIdeaNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockIdeaRepository)
			tt.setupMock(mockRepo)

			service := NewIdeaService(mockRepo, nil)
			idea, err := service.Get(context.Background(), ideaID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, idea)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, ideaID, idea.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestIdeaService_Update(t *testing.T) {
	ideaID := uuid.New()
	ownerID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockIdeaRepository)
		expectedError error
	}{
		{
			name: "owner update succeeds",
			setupMock: func(m *MockIdeaRepository) {
				m.On("UpdateOwned", mock.Anything, ideaID, ownerID, "New", "Desc").Return(int64(1), nil)
				m.On("FindByIDOwned", mock.Anything, ideaID, ownerID).Return(&model.Idea{
					ID: ideaID, Title: "New", Description: "Desc", CreatedByID: ownerID,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name: "zero affected rows maps to not found",
			setupMock: func(m *MockIdeaRepository) {
				m.On("UpdateOwned", mock.Anything, ideaID, ownerID, "New", "Desc").Return(int64(0), nil)
			},
			expectedError: errors.ErrIdeaNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockIdeaRepository)
			tt.setupMock(mockRepo)

			service := NewIdeaService(mockRepo, nil)
			idea, err := service.Update(context.Background(), ideaID, ownerID, "New", "Desc")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, idea)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "New", idea.Title)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestIdeaService_Delete(t *testing.T) {
	ideaID := uuid.New()
	ownerID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockIdeaRepository)
		expectedError error
	}{
		{
			name: "owner delete succeeds",
			setupMock: func(m *MockIdeaRepository) {
				m.On("DeleteOwned", mock.Anything, ideaID, ownerID).Return(int64(1), nil)
			},
			expectedError: nil,
		},
		{
			name: "non-owner delete maps to not found",
			setupMock: func(m *MockIdeaRepository) {
				m.On("DeleteOwned", mock.Anything, ideaID, ownerID).Return(int64(0), nil)
			},
			expectedError: errors.ErrIdeaNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockIdeaRepository)
			tt.setupMock(mockRepo)

			service := NewIdeaService(mockRepo, nil)
			err := service.Delete(context.Background(), ideaID, ownerID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestIdeaService_Feed(t *testing.T) {
	author := &model.User{ID: uuid.New(), Name: "Ada"}
	ideas := []model.Idea{{ID: uuid.New(), Title: "Public idea", CreatedBy: author}}

	mockRepo := new(MockIdeaRepository)
	mockRepo.On("ListAll", mock.Anything, "solar").Return(ideas, nil)

	service := NewIdeaService(mockRepo, nil)
	result, err := service.Feed(context.Background(), "solar")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "Ada", result[0].CreatedBy.Name)
	mockRepo.AssertExpectations(t)
}
