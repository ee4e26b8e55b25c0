package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kodbank/kodbank-api/internal/core/ports"
)

// AccountHandler serves the authenticated money endpoints. Every route is
// behind the Auth middleware, so ctxAccountID is always available.
type AccountHandler struct {
	ledger ports.LedgerService
}

func NewAccountHandler(ledger ports.LedgerService) *AccountHandler {
	return &AccountHandler{ledger: ledger}
}

// Balance returns the current balance and records the inquiry in the ledger.
//
// @Summary      Check balance
// @Tags         account
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  balanceResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/balance [get]
func (h *AccountHandler) Balance(c echo.Context) error {
	uid, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	balance, err := h.ledger.Balance(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, balanceResponse{Balance: balance})
}

// Deposit credits the account.
//
// @Summary      Deposit money
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      amountRequest  true  "Amount in whole currency units"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/deposit [post]
func (h *AccountHandler) Deposit(c echo.Context) error {
	uid, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if _, err := h.ledger.Deposit(c.Request().Context(), uid, req.Amount); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Deposit successful"})
}

// Withdraw debits the account if the balance covers the amount.
//
// @Summary      Withdraw money
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      amountRequest  true  "Amount in whole currency units"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/withdraw [post]
func (h *AccountHandler) Withdraw(c echo.Context) error {
	uid, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if _, err := h.ledger.Withdraw(c.Request().Context(), uid, req.Amount); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Withdrawal successful"})
}

// Transactions returns the account's ledger history, newest first.
//
// @Summary      Transaction history
// @Tags         account
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   transactionResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/transactions [get]
func (h *AccountHandler) Transactions(c echo.Context) error {
	uid, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	entries, err := h.ledger.History(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	out := make([]transactionResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, transactionResponse{
			ID:        e.ID,
			AccountID: e.AccountID,
			Type:      string(e.Type),
			Amount:    e.Amount,
			Status:    string(e.Status),
			Timestamp: e.Timestamp,
		})
	}

	return c.JSON(http.StatusOK, out)
}

// UserInfo returns the account profile without the password hash.
//
// @Summary      Account profile
// @Tags         account
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/user-info [get]
func (h *AccountHandler) UserInfo(c echo.Context) error {
	uid, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	account, err := h.ledger.Profile(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		UID:       account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Phone:     account.Phone,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
	})
}
