package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kodbank/kodbank-api/internal/core/domain"
)

const transactionsCollection = "transactions"

// LedgerRepository implements ports.LedgerRepository using MongoDB.
//
// Every mutation runs inside a multi-document transaction so the balance
// change and its ledger entry commit or abort together. Two concurrent
// mutations of the same account document raise a write conflict inside the
// transaction; the driver retries the losing side, which re-reads the fresh
// balance; the net effect is a serial order per account. Operations on
// different accounts touch disjoint documents and proceed in parallel.
type LedgerRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewLedgerRepository(client *mongo.Client, db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{client: client, db: db}
}

// CreateAccount inserts the account and its Registration entry crediting the
// opening balance in one transaction. An account is never visible without its
// opening entry, and vice versa.
func (r *LedgerRepository) CreateAccount(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	uid, err := nextSequence(ctx, r.db, seqAccounts)
	if err != nil {
		return nil, err
	}
	tid, err := nextSequence(ctx, r.db, seqTransactions)
	if err != nil {
		return nil, err
	}

	created := *a
	created.ID = uid

	entry := domain.Transaction{
		ID:        tid,
		AccountID: uid,
		Type:      domain.TypeRegistration,
		Amount:    created.Balance,
		Status:    domain.StatusSuccess,
		Timestamp: time.Now().UTC(),
	}

	err = r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.db.Collection(accountsCollection).InsertOne(sc, created); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return domain.ErrUserExists
			}
			return fmt.Errorf("insert account: %w", err)
		}
		if _, err := r.db.Collection(transactionsCollection).InsertOne(sc, entry); err != nil {
			return fmt.Errorf("insert opening entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Credit increments the balance and appends a Deposit entry atomically.
func (r *LedgerRepository) Credit(ctx context.Context, accountID, amount int64) (int64, error) {
	return r.apply(ctx, accountID, amount, domain.TypeDeposit, bson.M{"_id": accountID})
}

// Debit decrements the balance and appends a Withdraw entry atomically. The
// filter admits only documents whose balance covers the amount, making the
// funds check and the debit a single conditional update; a stale read can
// never let two debits jointly overdraw the account.
func (r *LedgerRepository) Debit(ctx context.Context, accountID, amount int64) (int64, error) {
	return r.apply(ctx, accountID, -amount, domain.TypeWithdraw,
		bson.M{"_id": accountID, "balance": bson.M{"$gte": amount}})
}

// apply performs one balance mutation plus ledger append. delta is signed;
// the recorded entry amount is its magnitude.
func (r *LedgerRepository) apply(
	ctx context.Context,
	accountID, delta int64,
	entryType domain.TransactionType,
	filter bson.M,
) (int64, error) {
	tid, err := nextSequence(ctx, r.db, seqTransactions)
	if err != nil {
		return 0, err
	}

	amount := delta
	if amount < 0 {
		amount = -amount
	}

	var newBalance int64
	err = r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		var updated domain.Account
		err := r.db.Collection(accountsCollection).FindOneAndUpdate(
			sc,
			filter,
			bson.M{"$inc": bson.M{"balance": delta}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return r.classifyMiss(sc, accountID)
			}
			return fmt.Errorf("update balance: %w", err)
		}

		entry := domain.Transaction{
			ID:        tid,
			AccountID: accountID,
			Type:      entryType,
			Amount:    amount,
			Status:    domain.StatusSuccess,
			Timestamp: time.Now().UTC(),
		}
		if _, err := r.db.Collection(transactionsCollection).InsertOne(sc, entry); err != nil {
			return fmt.Errorf("insert ledger entry: %w", err)
		}

		newBalance = updated.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

// classifyMiss distinguishes a missing account from an insufficient balance
// after a conditional update matched nothing.
func (r *LedgerRepository) classifyMiss(ctx context.Context, accountID int64) error {
	err := r.db.Collection(accountsCollection).FindOne(ctx, bson.M{"_id": accountID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("classify update miss: %w", err)
	}
	return domain.ErrInsufficientFunds
}

// History returns the account's ledger entries, newest first.
func (r *LedgerRepository) History(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.db.Collection(transactionsCollection).Find(
		ctx,
		bson.M{"account_id": accountID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}

	entries := make([]domain.Transaction, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return entries, nil
}

// AppendAudit records an access (e.g. a balance inquiry) as a standalone
// ledger entry. No balance is touched, so no transaction scope is needed.
func (r *LedgerRepository) AppendAudit(ctx context.Context, accountID int64, t domain.TransactionType, amount int64) error {
	tid, err := nextSequence(ctx, r.db, seqTransactions)
	if err != nil {
		return err
	}

	entry := domain.Transaction{
		ID:        tid,
		AccountID: accountID,
		Type:      t,
		Amount:    amount,
		Status:    domain.StatusSuccess,
		Timestamp: time.Now().UTC(),
	}

	_, err = r.db.Collection(transactionsCollection).InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// inTransaction runs fn inside a mongo multi-document transaction. The driver
// retries fn on transient write conflicts, so fn must be idempotent within a
// single logical operation.
func (r *LedgerRepository) inTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
