package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kodbank/kodbank-api/internal/api/middleware"
	"github.com/kodbank/kodbank-api/internal/core/domain"
)

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{registerOut: &domain.Account{ID: 7, Username: "alice"}}
	h := NewAuthHandler(svc, time.Hour, false)

	c, rec := newJSONContext(http.MethodPost, "/api/register",
		`{"username":"alice","email":"alice@example.com","password":"hunter22","phone":"5551234"}`, 0)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp registerResponse
	decodeBody(t, rec, &resp)
	if resp.UserID != 7 {
		t.Fatalf("expected userId 7, got %d", resp.UserID)
	}
	if resp.Message != "User registered successfully" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if svc.registerIn.Username != "alice" || svc.registerIn.Password != "hunter22" {
		t.Fatalf("service got wrong input: %+v", svc.registerIn)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	// Missing email and a too-short password.
	c, _ := newJSONContext(http.MethodPost, "/api/register",
		`{"username":"alice","password":"pw"}`, 0)

	err := h.Register(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrUserExists}
	h := NewAuthHandler(svc, time.Hour, false)

	c, _ := newJSONContext(http.MethodPost, "/api/register",
		`{"username":"alice","email":"alice@example.com","password":"hunter22"}`, 0)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	svc := &stubAuthService{
		loginToken:   "signed-token",
		loginAccount: &domain.Account{ID: 7, Username: "alice", Role: domain.RoleCustomer},
	}
	h := NewAuthHandler(svc, time.Hour, false)

	c, rec := newJSONContext(http.MethodPost, "/api/login",
		`{"username":"alice","password":"hunter22"}`, 0)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	decodeBody(t, rec, &resp)
	if resp.User.Username != "alice" || resp.User.Role != domain.RoleCustomer {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}

	ck := findCookie(t, rec, middleware.TokenCookie)
	if ck.Value != "signed-token" {
		t.Fatalf("cookie carries %q", ck.Value)
	}
	if !ck.HttpOnly {
		t.Fatalf("cookie must be HttpOnly")
	}
	if ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie must be SameSite=Lax")
	}
	if ck.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("cookie MaxAge = %d", ck.MaxAge)
	}
	if ck.Path != "/" {
		t.Fatalf("cookie path = %q", ck.Path)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, time.Hour, false)

	c, rec := newJSONContext(http.MethodPost, "/api/login",
		`{"username":"alice","password":"wrong"}`, 0)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie should be set on failed login")
	}
}

func TestAuthHandler_Logout_RevokesAndClearsCookie(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, time.Hour, false)

	c, rec := newJSONContext(http.MethodPost, "/api/logout", "", 0)
	c.Request().AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: "signed-token"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if svc.loggedOut != "signed-token" {
		t.Fatalf("service revoked %q", svc.loggedOut)
	}

	ck := findCookie(t, rec, middleware.TokenCookie)
	if ck.Value != "" || ck.MaxAge != -1 {
		t.Fatalf("cookie not cleared: value=%q maxAge=%d", ck.Value, ck.MaxAge)
	}
}

func TestAuthHandler_Logout_NoCookie(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, time.Hour, false)

	c, rec := newJSONContext(http.MethodPost, "/api/logout", "", 0)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout without cookie must succeed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_RevokeFailure(t *testing.T) {
	revokeErr := errors.New("redis down")
	svc := &stubAuthService{logoutErr: revokeErr}
	h := NewAuthHandler(svc, time.Hour, false)

	c, rec := newJSONContext(http.MethodPost, "/api/logout", "", 0)
	c.Request().AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: "signed-token"})

	if err := h.Logout(c); !errors.Is(err, revokeErr) {
		t.Fatalf("expected revoke error to surface, got %v", err)
	}
	// The cookie must stay until the session record is actually gone.
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("cookie must not be cleared when revocation fails")
	}
}
