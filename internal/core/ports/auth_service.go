package ports

import (
	"context"
	"time"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
)

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	UserID    string
	Role      string
	JTI       string
	ExpiresAt time.Time
}

// RegisterInput carries a registration request. Actor is the verified caller
// and is nil for anonymous self-registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Actor    *TokenClaims
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService issues and validates bearer tokens.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	Logout(ctx context.Context, claims TokenClaims) error
	// VerifyToken fails with domain.ErrUnauthorized for a missing, malformed,
	// expired or revoked token.
	VerifyToken(ctx context.Context, raw string) (*TokenClaims, error)
}

// UserService is the admin-only account management.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
}
