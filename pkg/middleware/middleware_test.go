package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"airport-api/internal/clock"
	"airport-api/internal/data/entity"
	"airport-api/internal/data/repository"
	"airport-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const testSecret = "middleware-secret"

type stubSessions struct {
	repository.SessionRepository
	sessions map[uuid.UUID]*entity.SessionUser
	err      error
}

func (s *stubSessions) FindValidSession(_ context.Context, id uuid.UUID) (*entity.SessionUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sessions[id], nil
}

func issue(t *testing.T, userID, sessionID uuid.UUID, staff bool, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, userID, sessionID, staff, time.Now(), ttl)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok.Token
}

// echoUser reports the authenticated user back in headers.
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())
	w.Header().Set("X-User", userID.String())
	w.Header().Set("X-Session", sessionID.String())
	if utils.IsStaffFromContext(r.Context()) {
		w.Header().Set("X-Staff", "true")
	}
	w.WriteHeader(http.StatusOK)
})

func TestAuthSession(t *testing.T) {
	t.Parallel()

	userID, sessionID := uuid.New(), uuid.New()
	inactiveUser, inactiveSession := uuid.New(), uuid.New()
	sessions := &stubSessions{sessions: map[uuid.UUID]*entity.SessionUser{
		sessionID:       {SessionID: sessionID, UserID: userID, IsStaff: true, IsActive: true},
		inactiveSession: {SessionID: inactiveSession, UserID: inactiveUser, IsActive: false},
	}}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + issue(t, userID, sessionID, true, time.Hour), http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired token", "Bearer " + issue(t, userID, sessionID, true, -time.Minute), http.StatusUnauthorized},
		{"revoked session", "Bearer " + issue(t, userID, uuid.New(), true, time.Hour), http.StatusUnauthorized},
		{"session of another user", "Bearer " + issue(t, uuid.New(), sessionID, true, time.Hour), http.StatusUnauthorized},
		{"inactive user", "Bearer " + issue(t, inactiveUser, inactiveSession, false, time.Hour), http.StatusUnauthorized},
		{"valid", "Bearer " + issue(t, userID, sessionID, true, time.Hour), http.StatusOK},
		{"lowercase scheme", "bearer " + issue(t, userID, sessionID, true, time.Hour), http.StatusOK},
	}

	handler := AuthSession(testSecret, sessions, clock.NewSystem(), zap.NewNop())(echoUser)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/airport/flights", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusOK {
				if rec.Header().Get("X-User") != userID.String() || rec.Header().Get("X-Session") != sessionID.String() {
					t.Fatalf("context not populated: %v", rec.Header())
				}
			}
		})
	}
}

func TestAuthSession_ExpiryFollowsClock(t *testing.T) {
	t.Parallel()
	userID, sessionID := uuid.New(), uuid.New()
	sessions := &stubSessions{sessions: map[uuid.UUID]*entity.SessionUser{
		sessionID: {SessionID: sessionID, UserID: userID, IsActive: true},
	}}
	issuedAt := time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)
	tok, err := utils.NewAccessToken(testSecret, userID, sessionID, false, issuedAt, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"inside lifetime", issuedAt.Add(30 * time.Minute), http.StatusOK},
		{"after expiry", issuedAt.Add(2 * time.Hour), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := AuthSession(testSecret, sessions, clock.NewFixed(tt.now), zap.NewNop())(echoUser)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tok.Token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAuthSession_RepositoryError(t *testing.T) {
	t.Parallel()
	userID, sessionID := uuid.New(), uuid.New()
	handler := AuthSession(testSecret, &stubSessions{err: errors.New("db down")}, clock.NewSystem(), zap.NewNop())(echoUser)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, userID, sessionID, false, time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctx  func(context.Context) context.Context
		want int
	}{
		{"anonymous", func(ctx context.Context) context.Context { return ctx }, http.StatusUnauthorized},
		{"customer", func(ctx context.Context) context.Context { return utils.SetUserContext(ctx, uuid.New(), false) }, http.StatusForbidden},
		{"staff", func(ctx context.Context) context.Context { return utils.SetUserContext(ctx, uuid.New(), true) }, http.StatusOK},
	}

	handler := Admin(zap.NewNop())(echoUser)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/api/airport/airplanes", nil)
			req = req.WithContext(tt.ctx(req.Context()))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	tests := []struct {
		name       string
		origins    []string
		origin     string
		preflight  bool
		wantStatus int
		wantAllow  string
	}{
		{"no origin", []string{"https://ops.example.com"}, "", false, http.StatusTeapot, ""},
		{"allowed request", []string{"https://ops.example.com"}, "https://ops.example.com", false, http.StatusTeapot, "https://ops.example.com"},
		{"allowed preflight", []string{"https://ops.example.com"}, "https://ops.example.com", true, http.StatusNoContent, "https://ops.example.com"},
		{"blocked request", []string{"https://ops.example.com"}, "https://evil.example.com", false, http.StatusTeapot, ""},
		{"blocked preflight", []string{"https://ops.example.com"}, "https://evil.example.com", true, http.StatusForbidden, ""},
		{"wildcard", []string{" * "}, "https://any.example.com", false, http.StatusTeapot, "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			method := http.MethodGet
			if tt.preflight {
				method = http.MethodOptions
			}
			req := httptest.NewRequest(method, "/api/airport/flights", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()
			CORS(tt.origins)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Fatalf("allow origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	t.Parallel()
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	Recover(zap.NewNop())(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestLoggerKeepsStatus(t *testing.T) {
	t.Parallel()
	created := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})

	rec := httptest.NewRecorder()
	Logger(zap.NewNop())(created).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusCreated || rec.Body.String() != "ok" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}
