package accounts

import (
	"context"
	"net/http"

	"github.com/mapchelin/mapchelin/internal/app/store/users"
	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// errBadCredentials is shared by the unknown-email and wrong-password
// paths so responses do not reveal which half failed.
var errBadCredentials = apperr.Unauthorized("invalid email or password")

// ServeLogin handles POST /accounts/login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.HandleError(w, h.Log, "accounts: login", err)
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.HandleError(w, h.Log, "accounts: login", apperr.BadRequest("email and password are required"))
		return
	}

	if ok, reason := h.Logins.Check(r, req.Email); !ok {
		httpjson.WriteError(w, http.StatusTooManyRequests, reason)
		return
	}

	u, err := h.Users.GetByEmailWithPassword(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		httpjson.HandleError(w, h.Log, "accounts: login", errBadCredentials)
		return
	}
	if err != nil {
		httpjson.HandleError(w, h.Log, "accounts: login", err)
		return
	}
	if !userstore.VerifyPassword(u, req.Password) {
		httpjson.HandleError(w, h.Log, "accounts: login", errBadCredentials)
		return
	}

	payload, err := h.sessionPayload(u)
	if err != nil {
		httpjson.HandleError(w, h.Log, "accounts: login", err)
		return
	}

	h.Logins.ResetEmail(req.Email)
	httpjson.Write(w, http.StatusOK, "logged in", payload)
}
