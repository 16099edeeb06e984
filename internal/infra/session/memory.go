// Package session provides conversation history stores: an in-process map
// for single-node deployments and a Valkey-backed store for shared state.
package session

import (
	"context"
	"sync"

	"github.com/agriguard/agriguard/internal/domain/chat"
	"github.com/agriguard/agriguard/internal/domain/provider"
)

// MemoryStore keeps session history in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]provider.Message
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]provider.Message)}
}

// History returns a copy of the session's messages in append order.
func (s *MemoryStore) History(_ context.Context, sessionID string) ([]provider.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.sessions[sessionID]
	out := make([]provider.Message, len(stored))
	copy(out, stored)
	return out, nil
}

// Append adds messages to the end of the session.
func (s *MemoryStore) Append(_ context.Context, sessionID string, messages ...provider.Message) error {
	if len(messages) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], messages...)
	return nil
}

// Clear removes the session entirely.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

var _ chat.Store = (*MemoryStore)(nil)
