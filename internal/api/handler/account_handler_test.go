package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kodbank/kodbank-api/internal/core/domain"
)

func TestAccountHandler_Balance(t *testing.T) {
	svc := &stubLedgerService{balance: 100500}
	h := NewAccountHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/api/balance", "", 7)

	if err := h.Balance(c); err != nil {
		t.Fatalf("balance: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp balanceResponse
	decodeBody(t, rec, &resp)
	if resp.Balance != 100500 {
		t.Fatalf("expected balance 100500, got %d", resp.Balance)
	}
}

func TestAccountHandler_Balance_NoIdentity(t *testing.T) {
	h := NewAccountHandler(&stubLedgerService{})

	// No uid in the context: the auth middleware never ran.
	c, _ := newJSONContext(http.MethodGet, "/api/balance", "", 0)

	err := h.Balance(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAccountHandler_Deposit(t *testing.T) {
	svc := &stubLedgerService{balance: 100500}
	h := NewAccountHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/api/deposit", `{"amount":500}`, 7)

	if err := h.Deposit(c); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.depositAmount != 500 {
		t.Fatalf("service got amount %d", svc.depositAmount)
	}

	var resp messageResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "Deposit successful" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestAccountHandler_Deposit_InvalidAmount(t *testing.T) {
	svc := &stubLedgerService{err: domain.ErrInvalidAmount}
	h := NewAccountHandler(svc)

	c, _ := newJSONContext(http.MethodPost, "/api/deposit", `{"amount":-50}`, 7)

	if err := h.Deposit(c); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestAccountHandler_Withdraw(t *testing.T) {
	svc := &stubLedgerService{balance: 99500}
	h := NewAccountHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/api/withdraw", `{"amount":500}`, 7)

	if err := h.Withdraw(c); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if svc.withdrawAmount != 500 {
		t.Fatalf("service got amount %d", svc.withdrawAmount)
	}

	var resp messageResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "Withdrawal successful" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestAccountHandler_Withdraw_InsufficientFunds(t *testing.T) {
	svc := &stubLedgerService{err: domain.ErrInsufficientFunds}
	h := NewAccountHandler(svc)

	c, _ := newJSONContext(http.MethodPost, "/api/withdraw", `{"amount":1000000}`, 7)

	if err := h.Withdraw(c); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestAccountHandler_Transactions(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	svc := &stubLedgerService{history: []domain.Transaction{
		{ID: 3, AccountID: 7, Type: domain.TypeWithdraw, Amount: 200, Status: domain.StatusSuccess, Timestamp: now},
		{ID: 2, AccountID: 7, Type: domain.TypeDeposit, Amount: 500, Status: domain.StatusSuccess, Timestamp: now.Add(-time.Minute)},
		{ID: 1, AccountID: 7, Type: domain.TypeRegistration, Amount: 100000, Status: domain.StatusSuccess, Timestamp: now.Add(-time.Hour)},
	}}
	h := NewAccountHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/api/transactions", "", 7)

	if err := h.Transactions(c); err != nil {
		t.Fatalf("transactions: %v", err)
	}

	var resp []transactionResponse
	decodeBody(t, rec, &resp)
	if len(resp) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(resp))
	}
	if resp[0].Type != string(domain.TypeWithdraw) || resp[2].Type != string(domain.TypeRegistration) {
		t.Fatalf("order not preserved: %+v", resp)
	}
	if resp[2].Amount != 100000 {
		t.Fatalf("registration amount = %d", resp[2].Amount)
	}
}

func TestAccountHandler_Transactions_Empty(t *testing.T) {
	h := NewAccountHandler(&stubLedgerService{})

	c, rec := newJSONContext(http.MethodGet, "/api/transactions", "", 7)

	if err := h.Transactions(c); err != nil {
		t.Fatalf("transactions: %v", err)
	}
	// Empty history must serialize as [], not null.
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestAccountHandler_UserInfo(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := &stubLedgerService{profile: &domain.Account{
		ID:           7,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		Balance:      100000,
		Phone:        "5551234",
		Role:         domain.RoleCustomer,
		CreatedAt:    created,
	}}
	h := NewAccountHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/api/user-info", "", 7)

	if err := h.UserInfo(c); err != nil {
		t.Fatalf("user-info: %v", err)
	}

	var resp map[string]any
	decodeBody(t, rec, &resp)
	if resp["username"] != "alice" || resp["role"] != domain.RoleCustomer {
		t.Fatalf("unexpected profile: %v", resp)
	}
	if _, leaked := resp["balance"]; leaked {
		t.Fatalf("profile must not include balance")
	}
	for key := range resp {
		if key == "password" || key == "password_hash" {
			t.Fatalf("profile leaked %q", key)
		}
	}
}
