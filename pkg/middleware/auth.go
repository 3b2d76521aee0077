package middleware

import (
	"net/http"
	"strings"

	"airport-api/internal/clock"
	"airport-api/internal/data/repository"
	"airport-api/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the Bearer access token and the session behind it,
// then stores the user and session ids in the request context.
func AuthSession(secret string, sessionRepo repository.SessionRepository, clk clock.Clock, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			// 2. Verify signature and expiry
			userID, sessionID, err := utils.ParseAccessToken(secret, strings.TrimSpace(token), clk.Now())
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// 3. Session must still be live
			session, err := sessionRepo.FindValidSession(r.Context(), sessionID)
			if err != nil {
				logger.Error("Failed to validate session",
					zap.String("session_id", sessionID.String()),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil || session.UserID != userID || !session.IsActive {
				logger.Warn("Invalid or expired session", zap.String("session_id", sessionID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID, session.IsStaff)
			ctx = utils.SetSessionContext(ctx, session.SessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin lets only staff users through. It must run after AuthSession.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !utils.IsStaffFromContext(r.Context()) {
				logger.Warn("Admin check: non-staff access attempt",
					zap.String("user_id", userID.String()),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
