// internal/app/features/authkakao/routes.go
package authkakao

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the Kakao login flow, mounted under
// /auth/kakao.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	r.Get("/callback", h.ServeCallback)
	return r
}
