package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/campusforge/recruit-backend/internal/config"
	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("token is invalid")
)

// TokenKind distinguishes access tokens from refresh tokens. The two kinds
// are signed with different secrets and are never interchangeable.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	TokenKind TokenKind `json:"token_kind"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
}

// AuthService handles password hashing and JWT issuance/validation.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateTokenPair issues an access+refresh pair for a user. Admin
// identities get a longer access window (2h vs 15m) but a shorter refresh
// window (4d vs 7d) than regular applicants.
func (s *AuthService) GenerateTokenPair(u *model.User) (*model.TokenPair, error) {
	accessExpiry := s.cfg.AccessExpiry
	refreshExpiry := s.cfg.RefreshExpiry
	if u.HasRole(model.RoleAdmin) {
		accessExpiry = s.cfg.AdminAccessExpiry
		refreshExpiry = s.cfg.AdminRefreshExpiry
	}

	access, err := s.sign(u, TokenKindAccess, accessExpiry, s.cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(u, TokenKindRefresh, refreshExpiry, s.cfg.JWTRefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) sign(u *model.User, kind TokenKind, expiry time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		TokenKind: kind,
		Email:     u.Email,
		Roles:     u.Roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken parses and validates an access token.
func (s *AuthService) ValidateAccessToken(tokenStr string) (*Claims, error) {
	return s.validate(tokenStr, TokenKindAccess, s.cfg.JWTSecret)
}

// ValidateRefreshToken parses and validates a refresh token.
func (s *AuthService) ValidateRefreshToken(tokenStr string) (*Claims, error) {
	return s.validate(tokenStr, TokenKindRefresh, s.cfg.JWTRefreshSecret)
}

func (s *AuthService) validate(tokenStr string, kind TokenKind, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		// Clients treat expiry differently from tampering: an expired access
		// token triggers a silent refresh, an invalid one forces re-login.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenKind != kind {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// SubjectID parses the claims' subject back into a user id.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
