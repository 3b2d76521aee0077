package wire

import (
	"net/http"

	"airport-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// crudHandler is the handler shape shared by every reference resource.
type crudHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type imageHandler interface {
	UploadImage(w http.ResponseWriter, r *http.Request)
}

func wireReference(r chi.Router, handler *adaptor.Handler, auth, admin func(http.Handler) http.Handler) {
	wireResource(r, "/airplane_types", handler.AirplaneType, auth, admin)
	wireResource(r, "/airplanes", handler.Airplane, auth, admin)
	wireResource(r, "/crews", handler.Crew, auth, admin)
	wireResource(r, "/airports", handler.Airport, auth, admin)
	wireResource(r, "/routes", handler.Route, auth, admin)
}

// wireResource mounts list/retrieve for any authenticated user and
// create/update/delete, plus upload-image when supported, for staff.
func wireResource(r chi.Router, path string, h crudHandler, auth, admin func(http.Handler) http.Handler) {
	r.Route(path, func(r chi.Router) {
		r.Use(auth)

		// ==================== READ ROUTES ====================
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			if up, ok := h.(imageHandler); ok {
				r.Post("/{id}/upload-image", up.UploadImage)
			}
		})
	})
}
