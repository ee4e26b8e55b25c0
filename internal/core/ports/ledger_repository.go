package ports

import (
	"context"

	"github.com/kodbank/kodbank-api/internal/core/domain"
)

// LedgerRepository owns every balance mutation and the append-only ledger.
// Each mutating call applies the balance change and its ledger entry as one
// atomic unit: concurrent calls against the same account linearize, and no
// call ever leaves a balance change without its entry (or vice versa).
type LedgerRepository interface {
	// CreateAccount inserts the account together with its Registration entry
	// crediting the opening balance. Returns the stored account with its
	// allocated ID. A duplicate username yields domain.ErrUserExists.
	CreateAccount(ctx context.Context, a *domain.Account) (*domain.Account, error)

	// Credit increments the balance and appends a Deposit entry.
	// Returns the balance after the credit.
	Credit(ctx context.Context, accountID, amount int64) (int64, error)

	// Debit decrements the balance and appends a Withdraw entry, but only if
	// the current balance covers the amount; the check and the debit are a
	// single atomic step, so two racing debits can never jointly overdraw.
	// Returns domain.ErrInsufficientFunds when the balance is short.
	Debit(ctx context.Context, accountID, amount int64) (int64, error)

	// History returns the account's ledger entries, newest first.
	History(ctx context.Context, accountID int64) ([]domain.Transaction, error)

	// AppendAudit appends a standalone entry that records access rather than
	// a balance change (amount is informational, typically zero).
	AppendAudit(ctx context.Context, accountID int64, t domain.TransactionType, amount int64) error
}
