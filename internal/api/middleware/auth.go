package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

// Context keys set by Auth.
const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (*ports.TokenClaims, error)
}

// Auth verifies the bearer token and injects its claims into the context.
// A missing or malformed header is treated as an empty token, which the
// verifier rejects.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := verifier.VerifyToken(c.Request().Context(), BearerToken(c))
			if err != nil {
				return err
			}

			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.UserID)
			c.Set(RoleKey, claims.Role)

			return next(c)
		}
	}
}

// BearerToken returns the token of an "Authorization: Bearer <token>"
// header, or "" when the header is absent or uses another scheme.
func BearerToken(c echo.Context) string {
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Claims returns the claims injected by Auth.
func Claims(c echo.Context) (*ports.TokenClaims, bool) {
	claims, ok := c.Get(ClaimsKey).(*ports.TokenClaims)
	return claims, ok && claims != nil
}
