package accounts

import (
	"context"
	"net/http"

	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/auth"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/normalize"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

type nicknameRequest struct {
	Nickname string `json:"nickname"`
}

// ServeEditNickname handles PATCH /accounts/me/nickname. The update and the
// existence check are one find-and-modify, so a user deleted mid-request
// reads as not-found rather than a stale success.
func (h *Handler) ServeEditNickname(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cu, _ := auth.CurrentUser(r)

	var req nicknameRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.HandleError(w, h.Log, "accounts: edit nickname", err)
		return
	}
	if normalize.Nickname(req.Nickname) == "" {
		httpjson.HandleError(w, h.Log, "accounts: edit nickname", apperr.BadRequest("nickname is required"))
		return
	}

	u, err := h.Users.UpdateNickname(ctx, cu.ID, req.Nickname)
	if err == mongo.ErrNoDocuments {
		httpjson.HandleError(w, h.Log, "accounts: edit nickname", apperr.NotFound("user not found"))
		return
	}
	if err != nil {
		httpjson.HandleError(w, h.Log, "accounts: edit nickname", err)
		return
	}

	httpjson.Write(w, http.StatusOK, "nickname updated", map[string]any{
		"user": u.Public(),
	})
}
