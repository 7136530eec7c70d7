package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lakshaya-counselling/assessment-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(secret string) *AuthService {
	cfg := &config.Config{
		JWTSecret:  secret,
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	return NewAuthService(cfg, nil)
}

func TestAuth_PasswordRoundtrip(t *testing.T) {
	svc := newTestAuth("secret")

	hash, err := svc.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := svc.CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("CheckPassword rejected the right password: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuth_AdminTokenRoundtrip(t *testing.T) {
	svc := newTestAuth("secret")

	token, err := svc.GenerateAdminToken(7, 2, []string{"candidates:read", "results:read"})
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.TokenType != TokenTypeAdmin {
		t.Errorf("token type = %q, want admin", claims.TokenType)
	}
	if claims.UserID != 7 || claims.RoleID != 2 {
		t.Errorf("ids = %d/%d, want 7/2", claims.UserID, claims.RoleID)
	}
	if len(claims.Permissions) != 2 || claims.Permissions[0] != "candidates:read" {
		t.Errorf("permissions = %v", claims.Permissions)
	}
	if claims.ID == "" {
		t.Error("JTI missing")
	}
}

func TestAuth_ValidateTokenWrongSecret(t *testing.T) {
	token, err := newTestAuth("secret-a").GenerateAdminToken(1, 1, nil)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	if _, err := newTestAuth("secret-b").ValidateToken(token); err == nil {
		t.Fatal("expected validation failure for wrong secret")
	}
}

func TestAuth_ValidateTokenGarbage(t *testing.T) {
	if _, err := newTestAuth("secret").ValidateToken("not-a-jwt"); err == nil {
		t.Fatal("expected validation failure for garbage token")
	}
}
