package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kodbank/kodbank-api/internal/core/domain"
	"github.com/kodbank/kodbank-api/internal/core/ports"
)

// stubAuthService records calls and returns canned results.
type stubAuthService struct {
	registerIn  ports.RegisterInput
	registerOut *domain.Account
	registerErr error

	loginToken   string
	loginAccount *domain.Account
	loginErr     error

	loggedOut string
	logoutErr error
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*domain.Account, error) {
	s.registerIn = in
	return s.registerOut, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.Account, error) {
	return s.loginToken, s.loginAccount, s.loginErr
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = token
	return s.logoutErr
}

// stubLedgerService returns canned results for the money endpoints.
type stubLedgerService struct {
	balance int64
	history []domain.Transaction
	profile *domain.Account
	err     error

	depositAmount  int64
	withdrawAmount int64
}

func (s *stubLedgerService) Deposit(_ context.Context, _, amount int64) (int64, error) {
	s.depositAmount = amount
	return s.balance, s.err
}

func (s *stubLedgerService) Withdraw(_ context.Context, _, amount int64) (int64, error) {
	s.withdrawAmount = amount
	return s.balance, s.err
}

func (s *stubLedgerService) Balance(_ context.Context, _ int64) (int64, error) {
	return s.balance, s.err
}

func (s *stubLedgerService) History(_ context.Context, _ int64) ([]domain.Transaction, error) {
	return s.history, s.err
}

func (s *stubLedgerService) Profile(_ context.Context, _ int64) (*domain.Account, error) {
	return s.profile, s.err
}

// newJSONContext builds an echo context the way the router does: JSON body,
// validator attached, and (optionally) the uid set by the auth middleware.
func newJSONContext(method, path, body string, uid int64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != 0 {
		c.Set("uid", uid)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
