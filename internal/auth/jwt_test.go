package auth

import (
	"testing"
	"time"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := NewAdminToken("test-secret", "test-issuer", 10*time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !claims.Admin {
		t.Fatalf("expected admin claim to be set")
	}
	if claims.Issuer != "test-issuer" {
		t.Fatalf("expected issuer test-issuer, got %s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatalf("expected token id")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewAdminToken("test-secret", "test-issuer", 10*time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := NewAdminToken("test-secret", "test-issuer", -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("test-secret", token); err == nil {
		t.Fatalf("expected parse to fail for expired token")
	}
}
