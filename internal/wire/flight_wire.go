package wire

import (
	"net/http"

	"airport-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFlight(r chi.Router, flightHandler *adaptor.FlightHandler, auth, admin func(http.Handler) http.Handler) {
	r.Route("/flights", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", flightHandler.List)
		r.Get("/{id}", flightHandler.Get)
		r.Get("/{id}/seats", flightHandler.Seats)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", flightHandler.Create)
			r.Put("/{id}", flightHandler.Update)
			r.Delete("/{id}", flightHandler.Delete)
		})
	})
}
