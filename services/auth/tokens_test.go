package auth_test

import (
	"errors"
	"testing"
	"time"

	"reelist/services/auth"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	issuer := auth.NewJWTIssuer([]byte("test-secret"), time.Hour)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify returned error: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("expected user-123, got %q", userID)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := auth.NewJWTIssuer([]byte("test-secret"), time.Hour)

	if _, err := issuer.Verify("not-a-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	minter := auth.NewJWTIssuer([]byte("secret-a"), time.Hour)
	checker := auth.NewJWTIssuer([]byte("secret-b"), time.Hour)

	token, err := minter.Issue("user-123")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}
	if _, err := checker.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := auth.NewJWTIssuer([]byte("test-secret"), -time.Minute)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}
	if _, err := issuer.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
