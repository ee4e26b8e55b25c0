package domain

import "time"

// TransactionType identifies the operation recorded by a ledger entry.
type TransactionType string

const (
	TypeRegistration TransactionType = "Registration"
	TypeDeposit      TransactionType = "Deposit"
	TypeWithdraw     TransactionType = "Withdraw"
	TypeCheckBalance TransactionType = "Check Balance"
)

// TransactionStatus is the outcome recorded on a ledger entry.
type TransactionStatus string

const (
	StatusSuccess TransactionStatus = "Success"
	StatusFailed  TransactionStatus = "Failed"
)

// Transaction is one append-only ledger entry. IDs are monotonic across the
// whole ledger; entries are never mutated or deleted, forming the audit trail
// for every balance-affecting or balance-inquiry operation.
type Transaction struct {
	ID        int64             `json:"id" bson:"_id"`
	AccountID int64             `json:"account_id" bson:"account_id"`
	Type      TransactionType   `json:"type" bson:"type"`
	Amount    int64             `json:"amount" bson:"amount"`
	Status    TransactionStatus `json:"status" bson:"status"`
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
}
