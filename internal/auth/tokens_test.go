package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/dwelli/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: 42, Email: "user@dwelli.app", Role: models.RoleUser}

	token, err := m.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	id, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if id != 42 {
		t.Errorf("expected user id 42, got %d", id)
	}
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Issue(&models.User{ID: 1})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := NewTokenManager("test-secret", time.Minute).Verify(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	token, _ := NewTokenManager("other-secret", time.Hour).Issue(&models.User{ID: 1})
	if _, err := NewTokenManager("test-secret", time.Hour).Verify(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_RejectsNoneAlgorithm(t *testing.T) {
	claims := &models.JwtCustomClaims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}
	if _, err := NewTokenManager("test-secret", time.Hour).Verify(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	for _, tok := range []string{"", "abc", strings.Repeat("x.", 3)} {
		if _, err := m.Verify(tok); err != ErrInvalidToken {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}
