package wire

import (
	"net/http"

	"airport-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	userHandler *adaptor.UserHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/api/user", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/register", authHandler.Register)
		r.Post("/token", authHandler.Token)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/me", userHandler.Me)
			r.Post("/logout", authHandler.Logout)
			r.Post("/logout-all", authHandler.LogoutAll)
		})
	})
}
