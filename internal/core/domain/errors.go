package domain

import "errors"

// Sentinel errors returned by services and repositories. The API error
// handler maps each one to a deterministic HTTP status and a stable
// machine-readable kind, so they are part of the public contract.
var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid password")

	// Auth gateway rejections. Each one halts the request before the
	// downstream handler runs.
	ErrMissingToken   = errors.New("no token present")
	ErrMalformedToken = errors.New("token is malformed, expired, or badly signed")
	ErrTokenNotFound  = errors.New("token is not in the session store")
)
