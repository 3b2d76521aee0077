package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"airport-api/internal/domain"
	"airport-api/internal/dto/request"
	"airport-api/pkg/utils"

	"github.com/google/uuid"
)

func newAuthFixture(t *testing.T) (*memStore, AuthService) {
	t.Helper()
	store := newMemStore()
	return store, NewAuthService(store.repository(), testInfra(nil, nil).Clock, testConfig(), nopLog)
}

func TestAuthRegister(t *testing.T) {
	t.Parallel()
	_, svc := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &request.RegisterRequest{Email: " Pilot@Example.com ", Password: "secret", FirstName: "Amelia"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "pilot@example.com" || !user.IsActive || user.IsStaff {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.PasswordHash == "secret" || !utils.CheckPasswordHash("secret", user.PasswordHash) {
		t.Fatal("expected bcrypt hash of the password")
	}

	_, err = svc.Register(ctx, &request.RegisterRequest{Email: "pilot@example.com", Password: "other"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	_, err = svc.Register(ctx, &request.RegisterRequest{Email: "not-an-email", Password: "abc"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["password"]; !ok {
		t.Fatalf("expected password error, got %v", verr.Fields)
	}
}

func TestAuthToken(t *testing.T) {
	t.Parallel()
	store, svc := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &request.RegisterRequest{Email: "crew@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "crew@example.com", "nope!"},
		{"unknown email", "ghost@example.com", "secret"},
	}
	for _, tt := range tests {
		_, err := svc.Token(ctx, &request.LoginRequest{Email: tt.email, Password: tt.password}, SessionMeta{})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", tt.name, err)
		}
	}

	token, err := svc.Token(ctx, &request.LoginRequest{Email: "crew@example.com", Password: "secret"}, SessionMeta{UserAgent: "go-test"})
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if !token.ExpiresAt.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", token.ExpiresAt)
	}

	userID, sessionID, err := utils.ParseAccessToken(testConfig().JWT.Secret, token.Token, testNow)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if userID != user.ID || sessionID != token.SessionID {
		t.Fatalf("token carries %s/%s, want %s/%s", userID, sessionID, user.ID, token.SessionID)
	}
	if _, _, err := utils.ParseAccessToken(testConfig().JWT.Secret, token.Token, testNow.Add(2*time.Hour)); !errors.Is(err, utils.ErrInvalidToken) {
		t.Fatalf("expected token expired two hours after issue, got %v", err)
	}

	padded, err := svc.Token(ctx, &request.LoginRequest{Email: "  CREW@Example.com ", Password: "secret"}, SessionMeta{})
	if err != nil {
		t.Fatalf("token with padded mixed-case email: %v", err)
	}
	if padded.SessionID == token.SessionID {
		t.Fatal("expected a fresh session per token")
	}

	session, ok := store.sessions[sessionID]
	if !ok || session.UserID != user.ID || session.UserAgent == nil || *session.UserAgent != "go-test" || session.IPAddress != nil {
		t.Fatalf("unexpected session %+v", session)
	}

	if err := svc.Logout(ctx, sessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if store.sessions[sessionID].RevokedAt == nil {
		t.Fatal("expected session revoked")
	}
	if err := svc.Logout(ctx, sessionID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected second logout to fail with ErrUnauthorized, got %v", err)
	}
}

func TestAuthToken_InactiveUser(t *testing.T) {
	t.Parallel()
	store, svc := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &request.RegisterRequest{Email: "retired@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	store.users[user.ID].IsActive = false

	_, err = svc.Token(ctx, &request.LoginRequest{Email: "retired@example.com", Password: "secret"}, SessionMeta{})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("expected no session, got %d", len(store.sessions))
	}
}

func TestAuthMe(t *testing.T) {
	t.Parallel()
	_, svc := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &request.RegisterRequest{Email: "me@example.com", Password: "secret", LastName: "Earhart"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.Me(ctx, user.ID)
	if err != nil || got.LastName != "Earhart" {
		t.Fatalf("me: %+v %v", got, err)
	}
	if _, err := svc.Me(ctx, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
