package chat

import (
	"context"

	"github.com/agriguard/agriguard/internal/domain/provider"
)

// Store keeps per-session conversation history. Sessions are keyed by opaque
// ids; a session that was never written to reads back empty.
type Store interface {
	History(ctx context.Context, sessionID string) ([]provider.Message, error)
	Append(ctx context.Context, sessionID string, messages ...provider.Message) error
	Clear(ctx context.Context, sessionID string) error
}
