package auth

import (
	"strings"
	"testing"
	"time"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	svc, err := NewAuthService("test-secret", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc
}

func TestNewAuthService_RequiresSecretAndTTLs(t *testing.T) {
	if _, err := NewAuthService("", time.Minute, time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewAuthService("secret", 0, time.Hour); err == nil {
		t.Fatal("expected error for zero access ttl")
	}
}

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	svc := newTestService(t)

	pair, err := svc.GenerateTokenPair(42)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}

	access, err := svc.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if access.UserID != 42 || access.TokenType != "access" {
		t.Fatalf("unexpected access claims: %+v", access)
	}

	refresh, err := svc.ValidateToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("validate refresh token: %v", err)
	}
	if refresh.TokenType != "refresh" {
		t.Fatalf("unexpected refresh type: %q", refresh.TokenType)
	}
	if refresh.ID == "" {
		t.Fatal("refresh token missing jti")
	}
}

func TestValidateToken_RejectsTamperedToken(t *testing.T) {
	svc := newTestService(t)

	pair, err := svc.GenerateTokenPair(1)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	if _, err := svc.ValidateToken(tampered); err == nil {
		t.Fatal("expected error for tampered token")
	}
}

func TestValidateToken_RejectsForeignSecret(t *testing.T) {
	svc := newTestService(t)
	other, err := NewAuthService("other-secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}

	pair, err := other.GenerateTokenPair(1)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}
	if _, err := svc.ValidateToken(pair.AccessToken); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-passw0rd")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if strings.Contains(hash, "s3cret") {
		t.Fatal("hash leaks the password")
	}
	if !CheckPasswordHash("s3cret-passw0rd", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatal("wrong password accepted")
	}
}
