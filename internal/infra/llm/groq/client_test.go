package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agriguard/agriguard/internal/domain/provider"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient("test-key", srv.URL, "llama-3.3-70b-versatile", "llama-3.2-90b-vision-preview")
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("  ", "", "m", "v")
	require.Error(t, err)
}

func TestChatSendsSystemPromptAndAuth(t *testing.T) {
	var got chatRequest
	var auth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello farmer"}}]}`))
	})

	out, err := client.Chat(context.Background(), []provider.Message{
		{Role: provider.RoleUser, Content: "hi"},
	}, "You are an agronomist.")
	require.NoError(t, err)
	require.Equal(t, "hello farmer", out)
	require.Equal(t, "Bearer test-key", auth)

	require.Equal(t, "llama-3.3-70b-versatile", got.Model)
	require.Len(t, got.Messages, 2)
	require.Equal(t, provider.RoleSystem, got.Messages[0].Role)
	require.Equal(t, "You are an agronomist.", got.Messages[0].Content)
}

func TestAnalyzeImageBuildsDataURL(t *testing.T) {
	var raw map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"leaf looks fine"}}]}`))
	})

	out, err := client.AnalyzeImage(context.Background(), "aW1hZ2U=", "describe")
	require.NoError(t, err)
	require.Equal(t, "leaf looks fine", out)

	require.Equal(t, "llama-3.2-90b-vision-preview", raw["model"])
	msgs := raw["messages"].([]any)
	parts := msgs[0].(map[string]any)["content"].([]any)
	image := parts[0].(map[string]any)["image_url"].(map[string]any)
	require.Equal(t, "data:image/jpeg;base64,aW1hZ2U=", image["url"])
}

func TestChatSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit"}}`))
	})

	_, err := client.GenerateText(context.Background(), "prompt", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
	require.Contains(t, err.Error(), "rate limit")
}

func TestChatRejectsEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.GenerateText(context.Background(), "prompt", "")
	require.EqualError(t, err, "groq returned no choices")
}
