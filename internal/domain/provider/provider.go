package provider

import "context"

// Message roles shared by every backend.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of a conversation in the shared call shape.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Backend is the capability set every AI backend implements. Implementations
// translate the shared call shape into their API's payload format and extract
// the text reply from the response envelope.
type Backend interface {
	Name() string
	AnalyzeImage(ctx context.Context, imageBase64, prompt string) (string, error)
	GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error)
	Chat(ctx context.Context, messages []Message, systemPrompt string) (string, error)
}

// Prober reports whether a backend is reachable right now. Probe failures are
// swallowed to false.
type Prober interface {
	Reachable(ctx context.Context) bool
}
