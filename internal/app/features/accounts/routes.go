// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/go-chi/chi/v5"
	"github.com/mapchelin/mapchelin/internal/app/system/auth"
)

// Routes returns a subrouter for the account endpoints, mounted under
// /accounts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.ServeRegister)
	r.Get("/check-email", h.ServeCheckEmail)
	r.Post("/login", h.ServeLogin)
	r.Post("/refresh", h.ServeRefresh)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/validate", h.ServeValidate)
		r.Patch("/me/nickname", h.ServeEditNickname)
		r.Delete("/me", h.ServeDelete)
	})

	return r
}
