package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
)

// DescriptionGenerator produces a markdown idea description from a free-text
// explanation. Implemented by the OpenRouter client.
type DescriptionGenerator interface {
	GenerateIdeaDescription(ctx context.Context, title, explanation string) (string, error)
}

// AssistService turns a raw idea explanation into rich-text HTML for the
// editor. The returned HTML is treated as pre-sanitized content downstream.
type AssistService interface {
	GenerateDescription(ctx context.Context, title, explanation string) (string, error)
}

type assistService struct {
	generator DescriptionGenerator
}

// NewAssistService creates a new assist service.
func NewAssistService(generator DescriptionGenerator) AssistService {
	return &assistService{generator: generator}
}

// GenerateDescription fetches a markdown completion and renders it to HTML.
func (s *assistService) GenerateDescription(ctx context.Context, title, explanation string) (string, error) {
	markdown, err := s.generator.GenerateIdeaDescription(ctx, title, explanation)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
