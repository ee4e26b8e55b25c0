package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kodbank/kodbank-api/internal/core/domain"
	"github.com/kodbank/kodbank-api/internal/core/ports"
)

// stubLedger is an in-memory implementation of ports.LedgerRepository and
// ports.AccountRepository. A single mutex makes every operation atomic, the
// same guarantee the mongo repository provides per account, including the
// conditional debit, so the concurrency tests exercise the real contract.
type stubLedger struct {
	mu       sync.Mutex
	accounts map[int64]*domain.Account
	entries  []domain.Transaction
	nextUID  int64
	nextTxn  int64
}

func newStubLedger() *stubLedger {
	return &stubLedger{accounts: make(map[int64]*domain.Account)}
}

func (s *stubLedger) CreateAccount(_ context.Context, a *domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Username == a.Username {
			return nil, domain.ErrUserExists
		}
	}

	s.nextUID++
	created := *a
	created.ID = s.nextUID
	s.accounts[created.ID] = &created

	s.append(created.ID, domain.TypeRegistration, created.Balance)

	clone := created
	return &clone, nil
}

func (s *stubLedger) Credit(_ context.Context, accountID, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	a.Balance += amount
	s.append(accountID, domain.TypeDeposit, amount)
	return a.Balance, nil
}

func (s *stubLedger) Debit(_ context.Context, accountID, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	if a.Balance < amount {
		return 0, domain.ErrInsufficientFunds
	}
	a.Balance -= amount
	s.append(accountID, domain.TypeWithdraw, amount)
	return a.Balance, nil
}

func (s *stubLedger) History(_ context.Context, accountID int64) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Transaction, 0)
	for _, e := range s.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *stubLedger) AppendAudit(_ context.Context, accountID int64, t domain.TransactionType, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(accountID, t, amount)
	return nil
}

func (s *stubLedger) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username == username {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (s *stubLedger) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

// append must be called with s.mu held.
func (s *stubLedger) append(accountID int64, t domain.TransactionType, amount int64) {
	s.nextTxn++
	s.entries = append(s.entries, domain.Transaction{
		ID:        s.nextTxn,
		AccountID: accountID,
		Type:      t,
		Amount:    amount,
		Status:    domain.StatusSuccess,
		Timestamp: time.Now().UTC(),
	})
}

func (s *stubLedger) entriesFor(accountID int64, t domain.TransactionType) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Transaction, 0)
	for _, e := range s.entries {
		if e.AccountID == accountID && e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// syncAudit persists audit entries inline so tests stay deterministic.
type syncAudit struct {
	repo *stubLedger
}

func (a *syncAudit) Record(e ports.AuditEntry) {
	_ = a.repo.AppendAudit(context.Background(), e.AccountID, e.Type, e.Amount)
}

// stubSessions is an in-memory ports.SessionStore.
type stubSessions struct {
	mu     sync.Mutex
	tokens map[string]int64
	ttls   map[string]time.Duration
}

func newStubSessions() *stubSessions {
	return &stubSessions{tokens: make(map[string]int64), ttls: make(map[string]time.Duration)}
}

func (s *stubSessions) Save(_ context.Context, token string, accountID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = accountID
	s.ttls[token] = ttl
	return nil
}

func (s *stubSessions) Exists(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[token]
	return ok, nil
}

func (s *stubSessions) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
