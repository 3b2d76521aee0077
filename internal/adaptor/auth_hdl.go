package adaptor

import (
	"net"
	"net/http"

	"airport-api/internal/dto/request"
	"airport-api/internal/dto/response"
	"airport-api/internal/usecase"
	"airport-api/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/user/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", response.UserToResponse(user))
}

// Token handles POST /api/user/token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.service.Token(r.Context(), &req, usecase.SessionMeta{
		UserAgent: r.UserAgent(),
		IPAddress: clientIP(r),
	})
	if err != nil {
		writeServiceError(w, h.log, err, "issue token")
		return
	}

	utils.ResponseSuccess(w, "Login successful", response.TokenResponse{
		Access:    token.Token,
		ExpiresAt: token.ExpiresAt,
	})
}

// Logout handles POST /api/user/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), sessionID); err != nil {
		writeServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// LogoutAll handles POST /api/user/logout-all (protected)
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.LogoutAll(r.Context(), userID); err != nil {
		writeServiceError(w, h.log, err, "logout all")
		return
	}

	utils.ResponseSuccess(w, "All sessions revoked", nil)
}

// clientIP prefers the address set by chi's RealIP middleware.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
