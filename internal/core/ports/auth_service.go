package ports

import (
	"context"

	"github.com/kodbank/kodbank-api/internal/core/domain"
)

// RegisterInput carries the data needed to open a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string
}

// AuthService implements registration, login, and logout.
type AuthService interface {
	// Register opens an account with the configured role and opening balance.
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)

	// Login verifies the password and issues a signed, time-limited token
	// recorded in the session store.
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)

	// Logout revokes the token server-side; subsequent requests carrying it
	// fail token validation even before its natural expiry.
	Logout(ctx context.Context, token string) error
}
