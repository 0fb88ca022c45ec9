package accounts

import (
	"context"
	"net/http"

	"github.com/mapchelin/mapchelin/internal/app/system/auth"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeDelete handles DELETE /accounts/me. The cascade runs in one
// transaction: the user's store (with its comments and sent notifications),
// bookmarks, authored comments, recipient entries, and finally the user.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cu, _ := auth.CurrentUser(r)

	if err := h.Purger.Purge(ctx, cu.ID); err != nil {
		httpjson.HandleError(w, h.Log, "accounts: delete", err)
		return
	}

	h.Log.Info("account deleted", zap.String("user_id", cu.ID.Hex()))
	httpjson.Write(w, http.StatusOK, "account deleted", nil)
}
