package ports

import (
	"context"
	"time"
)

// SessionStore tracks issued tokens server-side. A token grants access only
// while present here; expiry is enforced by the store itself (TTL set at
// issuance), and revocation removes the record immediately.
type SessionStore interface {
	Save(ctx context.Context, token string, accountID int64, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}
