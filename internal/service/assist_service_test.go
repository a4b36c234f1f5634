package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ideahub/internal/assist"
)

// MockDescriptionGenerator is a mock implementation of DescriptionGenerator.
type MockDescriptionGenerator struct {
	mock.Mock
}

func (m *MockDescriptionGenerator) GenerateIdeaDescription(ctx context.Context, title, explanation string) (string, error) {
	args := m.Called(ctx, title, explanation)
	return args.String(0), args.Error(1)
}

func TestAssistService_GenerateDescription(t *testing.T) {
	t.Run("markdown completion is rendered to html", func(t *testing.T) {
		mockGen := new(MockDescriptionGenerator)
		mockGen.On("GenerateIdeaDescription", mock.Anything, "Solar kiosks", "charging in rural areas").
			Return("# Solar kiosks\n\n**Problem**: no power grid", nil)

		service := NewAssistService(mockGen)
		html, err := service.GenerateDescription(context.Background(), "Solar kiosks", "charging in rural areas")

		assert.NoError(t, err)
		assert.Contains(t, html, "<h1>Solar kiosks</h1>")
		assert.Contains(t, html, "<strong>Problem</strong>")
		mockGen.AssertExpectations(t)
	})

	t.Run("generator errors pass through unrendered", func(t *testing.T) {
		mockGen := new(MockDescriptionGenerator)
		mockGen.On("GenerateIdeaDescription", mock.Anything, "Title", "text").
			Return("", assist.ErrNotConfigured)

		service := NewAssistService(mockGen)
		html, err := service.GenerateDescription(context.Background(), "Title", "text")

		assert.Equal(t, assist.ErrNotConfigured, err)
		assert.Empty(t, html)
		mockGen.AssertExpectations(t)
	})
}
