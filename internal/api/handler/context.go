package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxAccountID extracts the account ID injected by the Auth middleware.
// Its presence proves the middleware ran; a handler reached without it is a
// routing mistake and is rejected rather than served with a zero uid.
func ctxAccountID(c echo.Context) (int64, error) {
	uid, ok := c.Get("uid").(int64)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return uid, nil
}
