package accounts

import (
	"context"
	"net/http"

	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/normalize"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
)

// ServeCheckEmail handles GET /accounts/check-email?email=… and reports
// whether the address is still free to register.
func (h *Handler) ServeCheckEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	email := normalize.Email(r.URL.Query().Get("email"))
	if email == "" {
		httpjson.HandleError(w, h.Log, "accounts: check email", apperr.BadRequest("email query parameter is required"))
		return
	}

	exists, err := h.Users.EmailExists(ctx, email)
	if err != nil {
		httpjson.HandleError(w, h.Log, "accounts: check email", err)
		return
	}

	httpjson.Write(w, http.StatusOK, "email availability checked", map[string]any{
		"available": !exists,
	})
}
