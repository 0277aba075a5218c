package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/sumeeth742/university/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-at-least-16-chars",
		TokenTTL:  ttl,
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	mgr := newTestManager(24 * time.Hour)

	token, err := mgr.GenerateToken("acc-1", "3BR23CS001", "student")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.AccountID != "acc-1" {
		t.Errorf("expected account_id=acc-1, got %s", claims.AccountID)
	}
	if claims.Username != "3BR23CS001" {
		t.Errorf("expected username=3BR23CS001, got %s", claims.Username)
	}
	if claims.Role != "student" {
		t.Errorf("expected role=student, got %s", claims.Role)
	}
	if claims.ID == "" {
		t.Error("expected non-empty jti")
	}
}

func TestParseToken_Expired(t *testing.T) {
	mgr := newTestManager(-time.Minute)

	token, err := mgr.GenerateToken("acc-1", "3BR23CS001", "student")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = mgr.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	mgr := newTestManager(time.Hour)
	other := NewManager(&config.AuthConfig{
		JWTSecret: "another-secret-16-chars-long",
		TokenTTL:  time.Hour,
	})

	token, err := mgr.GenerateToken("acc-1", "3BR23CS001", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = other.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got: %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	mgr := newTestManager(time.Hour)

	_, err := mgr.ParseToken("not.a.token")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got: %v", err)
	}
}
