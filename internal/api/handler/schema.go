package handler

import "time"

// errorResponse documents the error envelope in swagger; the actual rendering
// happens in the central HTTP error handler.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// messageResponse is the plain acknowledgement returned by mutating endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"omitempty,min=7"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// amountRequest carries the deposit/withdraw amount in whole currency units.
// The positivity rule lives in the ledger engine, not in a validate tag, so a
// non-positive amount reports invalid_amount (400) instead of a generic
// validation failure.
type amountRequest struct {
	Amount int64 `json:"amount"`
}

// --- Response types owned by the transport layer ---
// Intentionally separate from domain types so the JSON contract is not
// coupled to internal changes.

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type sessionUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Message string      `json:"message"`
	User    sessionUser `json:"user"`
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

type transactionResponse struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// profileResponse carries identity fields only: never the password hash and
// no balance (that is what GET /api/balance is for, and it leaves an audit
// entry).
type profileResponse struct {
	UID       int64     `json:"uid"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
