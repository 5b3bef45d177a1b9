package security

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-signing-key", time.Hour)

	token, err := manager.Issue("office@club.example", "admin")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if claims.Subject != "office@club.example" {
		t.Errorf("Subject = %q, want office@club.example", claims.Subject)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
}

func TestTokenRejectsWrongKey(t *testing.T) {
	issuer := NewTokenManager("key-one", time.Hour)
	verifier := NewTokenManager("key-two", time.Hour)

	token, err := issuer.Issue("someone", "member")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := verifier.Validate(token); err == nil {
		t.Error("Validate() should reject a token signed with a different key")
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	manager := NewTokenManager("test-signing-key", -time.Minute)

	token, err := manager.Issue("someone", "member")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := manager.Validate(token); err == nil {
		t.Error("Validate() should reject an expired token")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-signing-key", time.Hour)

	if _, err := manager.Validate("not.a.token"); err == nil {
		t.Error("Validate() should reject malformed input")
	}
}
