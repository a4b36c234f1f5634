package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		apiKey:     "test-key",
		baseURL:    serverURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestClient_GenerateIdeaDescription(t *testing.T) {
	t.Run("not configured without an api key", func(t *testing.T) {
		client := NewClient("")

		_, err := client.GenerateIdeaDescription(context.Background(), "Title", "explanation")

		assert.Equal(t, ErrNotConfigured, err)
	})

	t.Run("successful completion", func(t *testing.T) {
		var gotReq chatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"# Structured idea"}}]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		content, err := client.GenerateIdeaDescription(context.Background(), "Solar kiosks", "charging in rural areas")

		assert.NoError(t, err)
		assert.Equal(t, "# Structured idea", content)
		assert.Equal(t, completionModel, gotReq.Model)
		assert.Len(t, gotReq.Messages, 2)
		assert.Equal(t, "system", gotReq.Messages[0].Role)
		assert.Contains(t, gotReq.Messages[1].Content, "Solar kiosks")
	})

	t.Run("upstream error surfaces its message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.GenerateIdeaDescription(context.Background(), "Title", "explanation")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rate limit exceeded")
	})

	t.Run("empty completion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.GenerateIdeaDescription(context.Background(), "Title", "explanation")

		assert.Equal(t, ErrEmptyCompletion, err)
	})
}
