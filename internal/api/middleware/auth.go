package middleware

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/kodbank/kodbank-api/internal/api/metrics"
	"github.com/kodbank/kodbank-api/internal/core/domain"
)

// TokenCookie is the name of the HTTP-only cookie carrying the session token.
const TokenCookie = "token"

// SessionChecker reports whether a token is currently live in the session
// store. Satisfied by the Redis session store.
type SessionChecker interface {
	Exists(ctx context.Context, token string) (bool, error)
}

// Auth validates the session token and injects the account identity into the
// request context. A token is admitted only when all of the following hold:
//
//   - the token cookie is present,
//   - the JWT signature verifies (HS256) and it carries a uid claim,
//   - the token still exists in the session store (unexpired, not revoked).
//
// Any failure halts the request with 401; the downstream handler never runs.
func Auth(jwtSecret string, sessions SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrMissingToken
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				metrics.AuthFailuresTotal.WithLabelValues("malformed_token").Inc()
				return domain.ErrMalformedToken
			}

			// JSON numbers decode as float64; uids stay well below 2^53.
			uidClaim, ok := claims["uid"].(float64)
			if !ok {
				metrics.AuthFailuresTotal.WithLabelValues("malformed_token").Inc()
				return domain.ErrMalformedToken
			}

			live, err := sessions.Exists(c.Request().Context(), cookie.Value)
			if err != nil {
				return err
			}
			if !live {
				metrics.AuthFailuresTotal.WithLabelValues("token_not_found").Inc()
				return domain.ErrTokenNotFound
			}

			c.Set("uid", int64(uidClaim))
			c.Set("username", claims["username"])
			c.Set("role", claims["role"])

			return next(c)
		}
	}
}
