package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks issued tokens backed by Redis.
// Key format: session:<token> → account ID, with TTL equal to the token
// lifetime so expiry is enforced by the store itself.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save records a freshly issued token. Once ttl lapses the key disappears and
// the token stops being accepted, with no cleanup job required.
func (s *SessionStore) Save(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), strconv.FormatInt(accountID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Exists reports whether the token is currently live (saved and unexpired).
func (s *SessionStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

// Revoke deletes the token record. Revoking an unknown token is a no-op.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return "session:" + token
}
