package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
	"github.com/reelhouse/movie-catalog/internal/pkg/validation"
)

const defaultTokenTTL = 30 * 24 * time.Hour

type registerRules struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"oneof=user admin"`
}

// AuthService implements registration, login and bearer token handling.
type AuthService struct {
	repo      ports.UserRepository
	revoker   ports.TokenRevoker
	validate  *validation.Validator
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService returns an AuthService. revoker may be nil, in which case
// logout is a no-op and tokens stay valid until they expire.
func NewAuthService(repo ports.UserRepository, revoker ports.TokenRevoker, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:      repo,
		revoker:   revoker,
		validate:  validation.New(),
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates an account. Anyone may register as a regular user; only
// an authenticated admin may create an admin account.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	email := normalizeEmail(in.Email)

	if err := s.validate.Struct(registerRules{
		Username: strings.TrimSpace(in.Username),
		Email:    email,
		Password: in.Password,
		Role:     role,
	}); err != nil {
		return nil, err
	}

	if role == domain.RoleAdmin {
		if in.Actor == nil {
			return nil, fmt.Errorf("%w: admin accounts can only be created by an admin", domain.ErrUnauthorized)
		}
		if in.Actor.Role != domain.RoleAdmin {
			return nil, domain.ErrForbidden
		}
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Profile returns the account behind a verified token.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// Logout revokes the token described by claims until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims ports.TokenClaims) error {
	if s.revoker == nil || claims.JTI == "" {
		return nil
	}
	remaining := claims.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.JTI, remaining); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info().Str("user_id", claims.UserID).Msg("token revoked")
	return nil
}

// VerifyToken checks signature, expiry and revocation of a raw bearer token.
func (s *AuthService) VerifyToken(ctx context.Context, raw string) (*ports.TokenClaims, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: no token", domain.ErrUnauthorized)
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: token failed", domain.ErrUnauthorized)
	}

	sub, _ := claims.GetSubject()
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)
	exp, _ := claims.GetExpirationTime()
	if sub == "" || !domain.ValidRole(role) || exp == nil {
		return nil, fmt.Errorf("%w: token failed", domain.ErrUnauthorized)
	}

	if s.revoker != nil && jti != "" {
		revoked, err := s.revoker.IsRevoked(ctx, jti)
		switch {
		case err != nil:
			// Fail open: an unreachable revocation store must not lock everyone out.
			s.logger.Warn().Err(err).Msg("revocation check failed")
		case revoked:
			return nil, fmt.Errorf("%w: token revoked", domain.ErrUnauthorized)
		}
	}

	return &ports.TokenClaims{
		UserID:    sub,
		Role:      role,
		JTI:       jti,
		ExpiresAt: exp.Time,
	}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
