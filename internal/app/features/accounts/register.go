package accounts

import (
	"context"
	"net/http"
	"strings"

	"github.com/mapchelin/mapchelin/internal/app/store/users"
	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/normalize"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

func (req *registerRequest) validate() error {
	if normalize.Email(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return apperr.BadRequest("a valid email is required")
	}
	if req.Password == "" {
		return apperr.BadRequest("password is required")
	}
	if normalize.Nickname(req.Nickname) == "" {
		return apperr.BadRequest("nickname is required")
	}
	return nil
}

// ServeRegister handles POST /accounts/register. A duplicate email is a
// conflict, reported by the unique index rather than a pre-check, so two
// racing registrations cannot both win.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.HandleError(w, h.Log, "accounts: register", err)
		return
	}
	if err := req.validate(); err != nil {
		httpjson.HandleError(w, h.Log, "accounts: register", err)
		return
	}

	u, err := h.Users.Create(ctx, userstore.NewUser{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err == userstore.ErrDuplicateEmail {
		httpjson.HandleError(w, h.Log, "accounts: register", apperr.Conflict("a user with this email already exists"))
		return
	}
	if err != nil {
		httpjson.HandleError(w, h.Log, "accounts: register", err)
		return
	}

	payload, err := h.sessionPayload(&u)
	if err != nil {
		httpjson.HandleError(w, h.Log, "accounts: register", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, "registered", payload)
}
