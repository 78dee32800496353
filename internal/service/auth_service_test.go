package service

import (
	"errors"
	"testing"
	"time"

	"github.com/campusforge/recruit-backend/internal/config"
	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-access-secret",
		JWTRefreshSecret:   "test-refresh-secret",
		AccessExpiry:       15 * time.Minute,
		RefreshExpiry:      7 * 24 * time.Hour,
		AdminAccessExpiry:  2 * time.Hour,
		AdminRefreshExpiry: 4 * 24 * time.Hour,
		BcryptCost:         bcrypt.MinCost,
	}
}

func testUser(roles ...string) *model.User {
	return &model.User{
		ID:    uuid.New(),
		Email: "applicant@example.com",
		Roles: roles,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := NewAuthService(testAuthConfig())
	u := testUser(model.RoleUser)

	pair, err := svc.GenerateTokenPair(u)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if claims.Email != u.Email {
		t.Errorf("email claim = %q, want %q", claims.Email, u.Email)
	}
	id, err := claims.SubjectID()
	if err != nil || id != u.ID {
		t.Errorf("subject = %v (%v), want %v", id, err, u.ID)
	}

	if _, err := svc.ValidateRefreshToken(pair.RefreshToken); err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	svc := NewAuthService(testAuthConfig())
	pair, err := svc.GenerateTokenPair(testUser(model.RoleUser))
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	if _, err := svc.ValidateAccessToken(pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("refresh token accepted as access token: %v", err)
	}
	if _, err := svc.ValidateRefreshToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("access token accepted as refresh token: %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(testAuthConfig())
	pair, err := issuer.GenerateTokenPair(testUser(model.RoleUser))
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "a-different-secret"
	verifier := NewAuthService(otherCfg)

	if _, err := verifier.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("token signed with another secret accepted: %v", err)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessExpiry = -time.Minute
	svc := NewAuthService(cfg)

	pair, err := svc.GenerateTokenPair(testUser(model.RoleUser))
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	if _, err := svc.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAdminTokensUseAdminExpiry(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	adminPair, err := svc.GenerateTokenPair(testUser(model.RoleAdmin))
	if err != nil {
		t.Fatalf("generate admin pair: %v", err)
	}
	userPair, err := svc.GenerateTokenPair(testUser(model.RoleUser))
	if err != nil {
		t.Fatalf("generate user pair: %v", err)
	}

	adminClaims, err := svc.ValidateAccessToken(adminPair.AccessToken)
	if err != nil {
		t.Fatalf("validate admin access: %v", err)
	}
	userClaims, err := svc.ValidateAccessToken(userPair.AccessToken)
	if err != nil {
		t.Fatalf("validate user access: %v", err)
	}

	adminWindow := adminClaims.ExpiresAt.Sub(adminClaims.IssuedAt.Time)
	userWindow := userClaims.ExpiresAt.Sub(userClaims.IssuedAt.Time)
	if adminWindow <= userWindow {
		t.Errorf("admin access window %v should exceed user window %v", adminWindow, userWindow)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	hash, err := svc.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := svc.CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, perPage         int
		wantPage, wantPerPage int
	}{
		{0, 0, 1, 20},
		{-3, -1, 1, 20},
		{2, 50, 2, 50},
		{1, 500, 1, 100},
	}
	for _, tc := range cases {
		p, pp := clampPage(tc.page, tc.perPage)
		if p != tc.wantPage || pp != tc.wantPerPage {
			t.Errorf("clampPage(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.perPage, p, pp, tc.wantPage, tc.wantPerPage)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, perPage, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.perPage); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.perPage, got, tc.want)
		}
	}
}
