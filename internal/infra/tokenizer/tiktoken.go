// Package tokenizer counts prompt tokens for chat history budgeting.
package tokenizer

import (
	"log/slog"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the BPE used by the chat-style models we target.
const encodingName = "cl100k_base"

// Counter counts tokens with tiktoken, degrading to a character heuristic
// when the encoding cannot be loaded (offline environments).
type Counter struct {
	encoding *tiktoken.Tiktoken
}

// NewCounter constructs a token counter. Failure to load the encoding is
// logged, not fatal.
func NewCounter(logger *slog.Logger) *Counter {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		logger.Warn("tiktoken encoding unavailable, using heuristic counter", "error", err)
		return &Counter{}
	}
	return &Counter{encoding: encoding}
}

// Count returns the token count of text. The heuristic fallback assumes four
// characters per token.
func (c *Counter) Count(text string) int {
	if c.encoding == nil {
		return heuristicCount(text)
	}
	return len(c.encoding.Encode(text, nil, nil))
}

func heuristicCount(text string) int {
	if text == "" {
		return 0
	}
	return len(text)/4 + 1
}
