package accounts

import (
	"context"
	"net/http"

	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ServeRefresh handles POST /accounts/refresh. A valid refresh token buys a
// fresh pair; the account is re-read so a deleted user cannot keep minting
// tokens for the rest of the refresh window.
func (h *Handler) ServeRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req refreshRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.HandleError(w, h.Log, "accounts: refresh", err)
		return
	}
	if req.RefreshToken == "" {
		httpjson.HandleError(w, h.Log, "accounts: refresh", apperr.BadRequest("refresh_token is required"))
		return
	}

	userID, err := h.Tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		httpjson.HandleError(w, h.Log, "accounts: refresh", apperr.Unauthorized("invalid or expired refresh token"))
		return
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		httpjson.HandleError(w, h.Log, "accounts: refresh", apperr.Unauthorized("invalid or expired refresh token"))
		return
	}
	if err != nil {
		httpjson.HandleError(w, h.Log, "accounts: refresh", err)
		return
	}

	payload, err := h.sessionPayload(u)
	if err != nil {
		httpjson.HandleError(w, h.Log, "accounts: refresh", err)
		return
	}
	httpjson.Write(w, http.StatusOK, "tokens refreshed", payload)
}
