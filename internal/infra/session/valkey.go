package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/agriguard/agriguard/internal/domain/chat"
	"github.com/agriguard/agriguard/internal/domain/provider"
)

// defaultSessionTTL bounds how long an idle conversation is retained.
const defaultSessionTTL = 24 * time.Hour

// ValkeyStore keeps each session as a Valkey list of JSON-encoded messages.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyStore constructs a Valkey-backed session store.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "chat"
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: defaultSessionTTL}
}

// History returns the session's messages in append order. A missing key reads
// back as an empty history.
func (s *ValkeyStore) History(ctx context.Context, sessionID string) ([]provider.Message, error) {
	cmd := s.client.B().Lrange().Key(s.key(sessionID)).Start(0).Stop(-1).Build()
	entries, err := s.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session %s: %w", sessionID, err)
	}
	messages := make([]provider.Message, 0, len(entries))
	for _, entry := range entries {
		var msg provider.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("decode session message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Append pushes messages onto the session list and refreshes its TTL.
func (s *ValkeyStore) Append(ctx context.Context, sessionID string, messages ...provider.Message) error {
	if len(messages) == 0 {
		return nil
	}
	key := s.key(sessionID)
	payloads := make([]string, 0, len(messages))
	for _, msg := range messages {
		payload, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("encode session message: %w", err)
		}
		payloads = append(payloads, string(payload))
	}
	cmd := s.client.B().Rpush().Key(key).Element(payloads...).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("append session %s: %w", sessionID, err)
	}
	expire := s.client.B().Expire().Key(key).Seconds(int64(s.ttl.Seconds())).Build()
	if err := s.client.Do(ctx, expire).Error(); err != nil {
		return fmt.Errorf("refresh session ttl: %w", err)
	}
	return nil
}

// Clear deletes the session list.
func (s *ValkeyStore) Clear(ctx context.Context, sessionID string) error {
	cmd := s.client.B().Del().Key(s.key(sessionID)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("clear session %s: %w", sessionID, err)
	}
	return nil
}

func (s *ValkeyStore) key(sessionID string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, sessionID)
}

var _ chat.Store = (*ValkeyStore)(nil)
