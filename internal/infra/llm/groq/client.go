package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agriguard/agriguard/internal/domain/provider"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

const (
	chatTimeout   = 30 * time.Second
	visionTimeout = 60 * time.Second
	maxTokens     = 2048
)

// Client performs HTTP requests to the Groq OpenAI-compatible API.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	visionModel string
	httpClient  *http.Client
}

// NewClient constructs a Groq client.
func NewClient(apiKey, baseURL, model, visionModel string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("groq api key cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		visionModel: visionModel,
		httpClient:  &http.Client{Timeout: visionTimeout},
	}, nil
}

// Name identifies the backend in selection and status reports.
func (c *Client) Name() string { return "groq" }

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeImage sends the image as a data URL content part to the vision model.
func (c *Client) AnalyzeImage(ctx context.Context, imageBase64, prompt string) (string, error) {
	req := chatRequest{
		Model: c.visionModel,
		Messages: []chatMessage{
			{
				Role: provider.RoleUser,
				Content: []contentPart{
					{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + imageBase64}},
					{Type: "text", Text: prompt},
				},
			},
		},
		MaxTokens: maxTokens,
	}
	return c.complete(ctx, req, visionTimeout)
}

// GenerateText is a single-shot completion expressed as a chat call.
func (c *Client) GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error) {
	messages := []provider.Message{{Role: provider.RoleUser, Content: prompt}}
	return c.Chat(ctx, messages, systemPrompt)
}

// Chat runs a multi-turn conversation.
func (c *Client) Chat(ctx context.Context, messages []provider.Message, systemPrompt string) (string, error) {
	formatted := make([]chatMessage, 0, len(messages)+1)
	if systemPrompt != "" {
		formatted = append(formatted, chatMessage{Role: provider.RoleSystem, Content: systemPrompt})
	}
	for _, msg := range messages {
		formatted = append(formatted, chatMessage{Role: msg.Role, Content: msg.Content})
	}
	req := chatRequest{
		Model:       c.model,
		Messages:    formatted,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}
	return c.complete(ctx, req, chatTimeout)
}

func (c *Client) complete(ctx context.Context, req chatRequest, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode groq request: %w", err)
	}
	endpoint := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build groq request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("groq api error: status=%d body=%s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read groq response: %w", err)
	}
	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode groq response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("groq returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

var _ provider.Backend = (*Client)(nil)
