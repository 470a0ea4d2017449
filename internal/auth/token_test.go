package auth

import (
	"testing"
	"time"
)

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := NewVerifier("test-secret")
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return v
}

func TestVerifier_RoundTrip_Admin(t *testing.T) {
	v := newTestVerifier(t)

	token, err := v.IssueAdminToken(42, "ops@example.com", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims := v.Verify(token)
	if claims == nil {
		t.Fatalf("expected claims, got nil")
	}
	if claims.Type != TypeAdmin || claims.AdminID != 42 || claims.Email != "ops@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.UserID != 0 {
		t.Fatalf("user id should be empty on admin claims, got %d", claims.UserID)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatalf("iat/exp not set")
	}
}

func TestVerifier_RoundTrip_User(t *testing.T) {
	v := newTestVerifier(t)

	token, err := v.IssueUserToken(7, "a@example.com", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims := v.Verify(token)
	if claims == nil {
		t.Fatalf("expected claims, got nil")
	}
	if claims.Type != TypeUser || claims.UserID != 7 {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// Default TTL applies when none is given.
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < DefaultTokenTTL-time.Minute || ttl > DefaultTokenTTL {
		t.Fatalf("expected ~%v ttl, got %v", DefaultTokenTTL, ttl)
	}
}

func TestVerifier_Expired(t *testing.T) {
	v := newTestVerifier(t)

	token, err := v.Issue(Claims{Type: TypeUser, UserID: 1}, time.Millisecond)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if claims := v.Verify(token); claims != nil {
		t.Fatalf("expected nil for expired token, got %+v", claims)
	}
}

func TestVerifier_WrongSecret(t *testing.T) {
	v := newTestVerifier(t)
	other, err := NewVerifier("other-secret")
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	token, err := v.IssueUserToken(1, "", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if claims := other.Verify(token); claims != nil {
		t.Fatalf("expected nil for foreign signature, got %+v", claims)
	}
}

func TestVerifier_Malformed(t *testing.T) {
	v := newTestVerifier(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if claims := v.Verify(token); claims != nil {
			t.Fatalf("expected nil for %q, got %+v", token, claims)
		}
	}
}

func TestNewVerifier_EmptySecret(t *testing.T) {
	if _, err := NewVerifier(""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
