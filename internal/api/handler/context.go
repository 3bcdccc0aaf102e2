package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/reelhouse/movie-catalog/internal/api/middleware"
	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

// ctxClaims returns the claims injected by the Auth middleware. A missing
// value means the route was mounted without Auth.
func ctxClaims(c echo.Context) (*ports.TokenClaims, error) {
	claims, ok := middleware.Claims(c)
	if !ok || claims.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
