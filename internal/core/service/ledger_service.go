package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kodbank/kodbank-api/internal/api/metrics"
	"github.com/kodbank/kodbank-api/internal/core/domain"
	"github.com/kodbank/kodbank-api/internal/core/ports"
)

// LedgerService applies deposits and withdrawals and serves the read side
// (balance, history, profile). All mutations go through the LedgerRepository,
// which guarantees the balance change and its ledger entry land atomically.
type LedgerService struct {
	ledger   ports.LedgerRepository
	accounts ports.AccountRepository
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewLedgerService(
	ledger ports.LedgerRepository,
	accounts ports.AccountRepository,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{ledger: ledger, accounts: accounts, audit: audit, log: log}
}

// Deposit credits the account and returns the new balance.
func (s *LedgerService) Deposit(ctx context.Context, accountID, amount int64) (int64, error) {
	if amount <= 0 {
		metrics.LedgerOperationsTotal.WithLabelValues("deposit", "failed").Inc()
		return 0, domain.ErrInvalidAmount
	}

	start := time.Now()
	balance, err := s.ledger.Credit(ctx, accountID, amount)
	if err != nil {
		metrics.LedgerOperationsTotal.WithLabelValues("deposit", "failed").Inc()
		return 0, err
	}
	metrics.LedgerOperationsTotal.WithLabelValues("deposit", "success").Inc()
	metrics.LedgerOperationDuration.WithLabelValues("deposit").Observe(time.Since(start).Seconds())

	s.log.Info().Int64("uid", accountID).Int64("amount", amount).Int64("balance", balance).Msg("deposit applied")
	return balance, nil
}

// Withdraw debits the account and returns the new balance. The funds check
// and the debit are one atomic step in the repository, so a failed withdrawal
// leaves both the balance and the ledger untouched.
func (s *LedgerService) Withdraw(ctx context.Context, accountID, amount int64) (int64, error) {
	if amount <= 0 {
		metrics.LedgerOperationsTotal.WithLabelValues("withdraw", "failed").Inc()
		return 0, domain.ErrInvalidAmount
	}

	start := time.Now()
	balance, err := s.ledger.Debit(ctx, accountID, amount)
	if err != nil {
		metrics.LedgerOperationsTotal.WithLabelValues("withdraw", "failed").Inc()
		return 0, err
	}
	metrics.LedgerOperationsTotal.WithLabelValues("withdraw", "success").Inc()
	metrics.LedgerOperationDuration.WithLabelValues("withdraw").Observe(time.Since(start).Seconds())

	s.log.Info().Int64("uid", accountID).Int64("amount", amount).Int64("balance", balance).Msg("withdrawal applied")
	return balance, nil
}

// Balance returns the current balance and records the inquiry in the audit
// trail. The audit entry is queued rather than written inline so reads never
// block on ledger I/O; per-account ordering is preserved by the recorder.
func (s *LedgerService) Balance(ctx context.Context, accountID int64) (int64, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return 0, err
	}

	s.audit.Record(ports.AuditEntry{AccountID: accountID, Type: domain.TypeCheckBalance, Amount: 0})
	metrics.LedgerOperationsTotal.WithLabelValues("check_balance", "success").Inc()
	return account.Balance, nil
}

// History returns the account's ledger entries, newest first.
func (s *LedgerService) History(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	return s.ledger.History(ctx, accountID)
}

// Profile returns the account record for display. The password hash never
// serializes (json:"-"), so the handler can return this directly.
func (s *LedgerService) Profile(ctx context.Context, accountID int64) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, accountID)
}
