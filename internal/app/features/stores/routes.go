// internal/app/features/stores/routes.go
package stores

import (
	"github.com/go-chi/chi/v5"
	"github.com/mapchelin/mapchelin/internal/app/system/auth"
)

// Routes returns a subrouter for the store endpoints, mounted under
// /stores. The /me routes are declared before /{id} so chi never treats
// "me" as an object id.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Post("/", h.ServeNew)
		r.Get("/me", h.ServeMine)
		r.Delete("/me", h.ServeDeleteMine)
	})

	r.Get("/{id}", h.ServeView)

	return r
}
