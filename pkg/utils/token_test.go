package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessionID := uuid.New()

	tok, err := NewAccessToken("secret", userID, sessionID, true, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}

	gotUser, gotSession, err := ParseAccessToken("secret", tok.Token, time.Now())
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if gotUser != userID || gotSession != sessionID {
		t.Fatalf("expected %s/%s, got %s/%s", userID, sessionID, gotUser, gotSession)
	}
}

func TestParseAccessToken_Rejects(t *testing.T) {
	t.Parallel()

	valid, err := NewAccessToken("secret", uuid.New(), uuid.New(), false, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	expired, err := NewAccessToken("secret", uuid.New(), uuid.New(), false, time.Now().Add(-2*time.Hour), time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}

	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{name: "wrong secret", secret: "other", raw: valid.Token},
		{name: "expired", secret: "secret", raw: expired.Token},
		{name: "garbage", secret: "secret", raw: "not-a-jwt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := ParseAccessToken(tt.secret, tt.raw, time.Now()); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestParseAccessToken_UsesGivenTime(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)
	tok, err := NewAccessToken("secret", uuid.New(), uuid.New(), false, issuedAt, time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}

	if _, _, err := ParseAccessToken("secret", tok.Token, issuedAt.Add(59*time.Minute)); err != nil {
		t.Fatalf("expected token valid before expiry, got %v", err)
	}
	if _, _, err := ParseAccessToken("secret", tok.Token, issuedAt.Add(61*time.Minute)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestPasswordHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Fatal("expected password to match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("expected wrong password to fail")
	}
}
