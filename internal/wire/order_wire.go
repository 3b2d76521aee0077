package wire

import (
	"net/http"

	"airport-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// Orders are always scoped to the requesting user; only staff may delete.
func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, auth, admin func(http.Handler) http.Handler) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", orderHandler.List)
		r.Post("/", orderHandler.Create)
		r.Get("/{id}", orderHandler.Get)
		r.With(admin).Delete("/{id}", orderHandler.Delete)
	})
}
