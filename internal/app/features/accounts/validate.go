package accounts

import (
	"context"
	"net/http"

	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/auth"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeValidate handles GET /accounts/validate. It confirms the bearer's
// account still exists and returns the minimal profile clients cache.
func (h *Handler) ServeValidate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cu, _ := auth.CurrentUser(r)

	u, err := h.Users.GetByID(ctx, cu.ID)
	if err == mongo.ErrNoDocuments {
		httpjson.HandleError(w, h.Log, "accounts: validate", apperr.NotFound("user not found"))
		return
	}
	if err != nil {
		httpjson.HandleError(w, h.Log, "accounts: validate", err)
		return
	}

	httpjson.Write(w, http.StatusOK, "token is valid", map[string]any{
		"id":         u.ID.Hex(),
		"nickname":   u.Nickname,
		"role":       u.Role,
		"avatar_url": u.AvatarURL,
	})
}
