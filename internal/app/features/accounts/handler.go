// Package accounts serves registration, login, profile, and account
// deletion for both local and Kakao-backed users.
package accounts

import (
	"github.com/mapchelin/mapchelin/internal/app/store/queries/accountpurge"
	"github.com/mapchelin/mapchelin/internal/app/store/users"
	"github.com/mapchelin/mapchelin/internal/app/system/ratelimit"
	"github.com/mapchelin/mapchelin/internal/app/system/token"
	"github.com/mapchelin/mapchelin/internal/domain/models"
	"go.uber.org/zap"
)

// Handler holds the dependencies of the account endpoints.
type Handler struct {
	Users  *userstore.Store
	Tokens *token.Issuer
	Purger *accountpurge.Purger
	Logins *ratelimit.LoginLimiter
	Log    *zap.Logger
}

// NewHandler constructs an accounts Handler.
func NewHandler(users *userstore.Store, tokens *token.Issuer, purger *accountpurge.Purger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		Tokens: tokens,
		Purger: purger,
		Logins: ratelimit.NewLoginLimiter(),
		Log:    logger,
	}
}

// sessionPayload builds the login/registration response body: the public
// user projection plus a fresh token pair.
func (h *Handler) sessionPayload(u *models.User) (map[string]any, error) {
	pair, err := h.Tokens.IssuePair(u.ID, u.Nickname, u.Role)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"user":          u.Public(),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, nil
}
