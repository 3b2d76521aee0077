package adaptor

import (
	"net/http"

	"airport-api/internal/dto/response"
	"airport-api/internal/usecase"
	"airport-api/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewUserHandler(service usecase.AuthService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// Me handles GET /api/user/me (protected)
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", response.UserToResponse(user))
}
