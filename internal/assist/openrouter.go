package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"

	// A cheap reasoning model is enough for restating an idea clearly.
	completionModel = "deepseek/deepseek-r1-distill-llama-70b"

	completionTemperature = 0.7
	completionMaxTokens   = 2000
)

const systemPrompt = `You are an expert at helping entrepreneurs structure and clearly explain their ideas. Your role is to take raw, unstructured ideas and organize them into clear, professional descriptions.

When given an idea, you will:

1. **Clarify and Structure**: Organize the idea into a coherent concept
2. **Identify Key Elements**: Extract and present the core problem, proposed solution, target market, and value proposition
3. **Refine the Narrative**: Present the idea in a clear, professional manner

Respond with well-structured markdown that includes:
- A concise one-line description at the top
- Problem: What challenge does this address?
- Solution: How does the idea solve this problem?
- Target Market: Who are the primary users?
- Value Proposition: What value does it provide?

Keep the tone objective and straightforward. Do NOT include strategic analysis, assumptions to validate, potential challenges, opportunities, business models, or judgments about whether the idea is good. Simply describe what the idea is.`

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("OPENROUTER_API_KEY is not configured")
	// ErrEmptyCompletion is returned when the upstream response carries no content.
	ErrEmptyCompletion = errors.New("no content in completion response")
)

// Client calls the OpenRouter chat-completion endpoint. One request, one
// response; upstream failures surface as a single error to the caller.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an OpenRouter client. An empty key leaves the client in a
// not-configured state; calls then fail with ErrNotConfigured.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: openRouterBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateIdeaDescription asks the model to restructure a free-text
// explanation into a professional idea description. Returns markdown.
func (c *Client) GenerateIdeaDescription(ctx context.Context, title, explanation string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	userMessage := fmt.Sprintf(`Here's my startup idea:

**Title**: %s

**My explanation**: %s

Please help me refine this into a well-structured business idea description.`, title, explanation)

	body, err := json.Marshal(chatRequest{
		Model: completionModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", "https://ideahub.local")
	req.Header.Set("X-Title", "IdeaHub")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call openrouter: %w", err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode openrouter response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("openrouter api error: %s", msg)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return parsed.Choices[0].Message.Content, nil
}
