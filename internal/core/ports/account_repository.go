package ports

import (
	"context"

	"github.com/kodbank/kodbank-api/internal/core/domain"
)

// AccountRepository defines read access to stored accounts.
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
}
