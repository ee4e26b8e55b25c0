package ports

import (
	"context"

	"github.com/kodbank/kodbank-api/internal/core/domain"
)

// LedgerService defines the use-case operations on an account's money.
type LedgerService interface {
	// Deposit credits the account and returns the new balance.
	// Non-positive amounts fail with domain.ErrInvalidAmount.
	Deposit(ctx context.Context, accountID, amount int64) (int64, error)

	// Withdraw debits the account and returns the new balance. Fails with
	// domain.ErrInvalidAmount or domain.ErrInsufficientFunds; on any failure
	// the balance and the ledger are untouched.
	Withdraw(ctx context.Context, accountID, amount int64) (int64, error)

	// Balance returns the current balance and records the inquiry in the
	// audit trail.
	Balance(ctx context.Context, accountID int64) (int64, error)

	// History returns the account's ledger entries, newest first.
	History(ctx context.Context, accountID int64) ([]domain.Transaction, error)

	// Profile returns the account without its password hash.
	Profile(ctx context.Context, accountID int64) (*domain.Account, error)
}

// AuditEntry describes a balance-inquiry access to be recorded asynchronously.
type AuditEntry struct {
	AccountID int64
	Type      domain.TransactionType
	Amount    int64
}

// AuditRecorder accepts audit entries for background persistence. Entries for
// the same account are persisted in the order they were recorded.
type AuditRecorder interface {
	Record(e AuditEntry)
}
