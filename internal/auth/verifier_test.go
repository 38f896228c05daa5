package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testSecret   = "super-secret-signing-key"
	testAudience = "authenticated"
)

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user-42",
		"aud":   testAudience,
		"email": "student@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]interface{}{
			"username": "signmaster",
		},
	}
}

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	verifier, err := NewVerifier(testSecret, testAudience)
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	return verifier
}

func TestVerifyValidToken(t *testing.T) {
	verifier := newTestVerifier(t)

	identity, err := verifier.Verify(signToken(t, testSecret, jwt.SigningMethodHS256, validClaims()))
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if identity.ID != "user-42" {
		t.Fatalf("unexpected subject: %s", identity.ID)
	}
	if identity.Email != "student@example.com" {
		t.Fatalf("unexpected email: %s", identity.Email)
	}
	if identity.Username() != "signmaster" {
		t.Fatalf("unexpected username: %s", identity.Username())
	}
}

func TestUsernameFallsBackToEmail(t *testing.T) {
	verifier := newTestVerifier(t)

	claims := validClaims()
	delete(claims, "user_metadata")
	identity, err := verifier.Verify(signToken(t, testSecret, jwt.SigningMethodHS256, claims))
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if identity.Username() != "student@example.com" {
		t.Fatalf("unexpected username: %s", identity.Username())
	}
}

func TestVerifyRejections(t *testing.T) {
	verifier := newTestVerifier(t)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	noExpiry := validClaims()
	delete(noExpiry, "exp")

	wrongAudience := validClaims()
	wrongAudience["aud"] = "service_role"

	noSubject := validClaims()
	delete(noSubject, "sub")

	cases := map[string]string{
		"wrong secret":   signToken(t, "other-secret", jwt.SigningMethodHS256, validClaims()),
		"wrong alg":      signToken(t, testSecret, jwt.SigningMethodHS384, validClaims()),
		"expired":        signToken(t, testSecret, jwt.SigningMethodHS256, expired),
		"no expiry":      signToken(t, testSecret, jwt.SigningMethodHS256, noExpiry),
		"wrong audience": signToken(t, testSecret, jwt.SigningMethodHS256, wrongAudience),
		"no subject":     signToken(t, testSecret, jwt.SigningMethodHS256, noSubject),
		"garbage":        "not.a.token",
	}

	for name, token := range cases {
		if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestVerifierRequiresSecret(t *testing.T) {
	if _, err := NewVerifier("", testAudience); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
