package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agriguard/agriguard/internal/domain/provider"
)

const defaultBaseURL = "http://localhost:11434"

const (
	visionTimeout = 120 * time.Second
	textTimeout   = 60 * time.Second
	probeTimeout  = 3 * time.Second
)

// Client performs HTTP requests against a local Ollama server.
type Client struct {
	baseURL     string
	visionModel string
	llmModel    string
	httpClient  *http.Client
}

// NewClient constructs an Ollama client. No credential is required.
func NewClient(baseURL, visionModel, llmModel string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		visionModel: visionModel,
		llmModel:    llmModel,
		httpClient:  &http.Client{Timeout: visionTimeout},
	}
}

// Name identifies the backend in selection and status reports.
func (c *Client) Name() string { return "ollama" }

// Reachable probes /api/tags with a short timeout. Failures are swallowed.
func (c *Client) Reachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// ListModels returns the names of locally installed models.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("build tags request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tags request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tags request error: status=%d", resp.StatusCode)
	}
	var out struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode tags response: %w", err)
	}
	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images,omitempty"`
	Stream bool     `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type chatRequest struct {
	Model    string             `json:"model"`
	Messages []provider.Message `json:"messages"`
	Stream   bool               `json:"stream"`
}

type chatResponse struct {
	Message provider.Message `json:"message"`
}

// AnalyzeImage runs the vision model over a single base64 image.
func (c *Client) AnalyzeImage(ctx context.Context, imageBase64, prompt string) (string, error) {
	req := generateRequest{
		Model:  c.visionModel,
		Prompt: prompt,
		Images: []string{imageBase64},
	}
	body, err := c.post(ctx, "/api/generate", req, visionTimeout)
	if err != nil {
		return "", err
	}
	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return out.Response, nil
}

// GenerateText folds the system prompt into the prompt, matching the
// single-prompt generate endpoint.
func (c *Client) GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error) {
	full := prompt
	if systemPrompt != "" {
		full = systemPrompt + "\n\n" + prompt
	}
	req := generateRequest{Model: c.llmModel, Prompt: full}
	body, err := c.post(ctx, "/api/generate", req, textTimeout)
	if err != nil {
		return "", err
	}
	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return out.Response, nil
}

// Chat runs a multi-turn conversation against /api/chat.
func (c *Client) Chat(ctx context.Context, messages []provider.Message, systemPrompt string) (string, error) {
	formatted := make([]provider.Message, 0, len(messages)+1)
	if systemPrompt != "" {
		formatted = append(formatted, provider.Message{Role: provider.RoleSystem, Content: systemPrompt})
	}
	formatted = append(formatted, messages...)

	req := chatRequest{Model: c.llmModel, Messages: formatted}
	body, err := c.post(ctx, "/api/chat", req, textTimeout)
	if err != nil {
		return "", err
	}
	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	return out.Message.Content, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode ollama request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed (is the server running?): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("ollama api error: status=%d body=%s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

var (
	_ provider.Backend     = (*Client)(nil)
	_ provider.Prober      = (*Client)(nil)
	_ provider.ModelLister = (*Client)(nil)
)
