package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestSessionStore(t *testing.T, revoker TokenRevoker, opts JWTOptions) *JWTSessionStore {
	t.Helper()
	s, err := NewJWTSessionStore(testSecret, time.Minute, revoker, opts)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	return s
}

func TestJWTSessionStoreRoundTrip(t *testing.T) {
	s := newTestSessionStore(t, NewMemoryTokenRevoker(), JWTOptions{})
	token, err := s.NewSession(42)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	userID, err := s.UserIDFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if userID != 42 {
		t.Fatalf("unexpected user id: %d", userID)
	}
}

func TestJWTSessionStoreRejectsShortSecret(t *testing.T) {
	if _, err := NewJWTSessionStore("short", time.Minute, nil, JWTOptions{}); err == nil {
		t.Fatalf("expected short secret to be rejected")
	}
}

func TestJWTSessionStoreEnforcesAudience(t *testing.T) {
	signing := newTestSessionStore(t, nil, JWTOptions{Audience: "aud-a"})
	verify := newTestSessionStore(t, nil, JWTOptions{Audience: "aud-b"})

	token, err := signing.NewSession(7)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := verify.UserIDFromToken(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected audience mismatch to fail, got %v", err)
	}
}

func TestJWTSessionStoreRejectsForeignSecret(t *testing.T) {
	s := newTestSessionStore(t, nil, JWTOptions{})
	other, err := NewJWTSessionStore(strings.Repeat("z", 40), time.Minute, nil, JWTOptions{})
	if err != nil {
		t.Fatalf("new other store: %v", err)
	}
	token, err := other.NewSession(3)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := s.UserIDFromToken(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected signature mismatch, got %v", err)
	}
}

func TestJWTSessionStoreRevokesOnDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestSessionStore(t, NewMemoryTokenRevoker(), JWTOptions{})

	token, err := s.NewSession(9)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.DeleteSession(ctx, token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := s.UserIDFromToken(ctx, token); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected revoked token to fail, got %v", err)
	}
}

func TestJWTSessionStoreRejectsNonNumericSubject(t *testing.T) {
	s := newTestSessionStore(t, nil, JWTOptions{})
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    defaultJWTIssuer,
		Audience:  jwt.ClaimStrings{defaultJWTAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        "jti-1",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := s.UserIDFromToken(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected non-numeric subject to fail, got %v", err)
	}
}

func TestJWTSessionStoreRejectsFutureIssuedAt(t *testing.T) {
	s := newTestSessionStore(t, nil, JWTOptions{Leeway: time.Second})
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   "5",
		Issuer:    defaultJWTIssuer,
		Audience:  jwt.ClaimStrings{defaultJWTAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now.Add(10 * time.Minute)),
		ID:        "jti-future",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := s.UserIDFromToken(context.Background(), token); err == nil {
		t.Fatalf("expected future iat to fail")
	}
}

func TestJWTSessionStoreRotateGenerationInvalidatesTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestSessionStore(t, nil, JWTOptions{})

	old, err := s.NewSession(2)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.RotateGeneration()
	if _, err := s.UserIDFromToken(ctx, old); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected token from earlier generation to fail, got %v", err)
	}

	fresh, err := s.NewSession(2)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if id, err := s.UserIDFromToken(ctx, fresh); err != nil || id != 2 {
		t.Fatalf("expected fresh token to verify, got id=%d err=%v", id, err)
	}
}

func TestJWTSessionStoresDoNotShareGenerations(t *testing.T) {
	first := newTestSessionStore(t, nil, JWTOptions{})
	restarted := newTestSessionStore(t, nil, JWTOptions{})

	token, err := first.NewSession(4)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := restarted.UserIDFromToken(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected token from a previous process to fail, got %v", err)
	}
}
