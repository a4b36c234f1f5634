package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ideahub/internal/model"
	"ideahub/internal/repository"
	"ideahub/internal/service"
)

// MockIdeaService is a mock implementation of IdeaService.
type MockIdeaService struct {
	mock.Mock
}

func (m *MockIdeaService) List(ctx context.Context, ownerID uuid.UUID, params repository.ListParams) (*service.IdeaList, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IdeaList), args.Error(1)
}

func (m *MockIdeaService) Feed(ctx context.Context, search string) ([]model.Idea, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Idea), args.Error(1)
}

func (m *MockIdeaService) Get(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Idea), args.Error(1)
}

func (m *MockIdeaService) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.Idea, error) {
	args := m.Called(ctx, ownerID, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Idea), args.Error(1)
}

func (m *MockIdeaService) Update(ctx context.Context, id, ownerID uuid.UUID, title, description string) (*model.Idea, error) {
	args := m.Called(ctx, id, ownerID, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Idea), args.Error(1)
}

func (m *MockIdeaService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func communityAuthor() *model.User {
	image := "https://avatars.example/ada.png"
	return &model.User{
		ID:         uuid.New(),
		Name:       "Ada",
		Email:      "ada@private.example",
		Image:      &image,
		IsAdmin:    true,
		IsVerified: true,
	}
}

func assertPublicAuthorOnly(t *testing.T, body string) {
	t.Helper()
	assert.Contains(t, body, `"name":"Ada"`)
	assert.Contains(t, body, "avatars.example/ada.png")
	assert.NotContains(t, body, "ada@private.example")
	assert.NotContains(t, body, "is_admin")
	assert.NotContains(t, body, "is_verified")
}

func TestIdeaHandler_Feed_TrimsAuthor(t *testing.T) {
	author := communityAuthor()
	ideas := []model.Idea{
		{ID: uuid.New(), Title: "Solar kiosks", CreatedByID: author.ID, CreatedBy: author},
	}

	mockService := new(MockIdeaService)
	mockService.On("Feed", mock.Anything, "").Return(ideas, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewIdeaHandler(mockService)
	assert.NoError(t, h.Feed(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assertPublicAuthorOnly(t, rec.Body.String())
	mockService.AssertExpectations(t)
}

func TestIdeaHandler_Get_TrimsAuthor(t *testing.T) {
	author := communityAuthor()
	idea := &model.Idea{ID: uuid.New(), Title: "Solar kiosks", CreatedByID: author.ID, CreatedBy: author}

	mockService := new(MockIdeaService)
	mockService.On("Get", mock.Anything, idea.ID).Return(idea, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/ideas/"+idea.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(idea.ID.String())

	h := NewIdeaHandler(mockService)
	assert.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assertPublicAuthorOnly(t, rec.Body.String())
	mockService.AssertExpectations(t)
}
