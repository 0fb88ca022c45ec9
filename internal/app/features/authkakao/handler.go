// Package authkakao implements the Kakao OAuth login flow: a redirect to
// the consent screen and a callback that signs the user in, creating the
// account on first sight.
package authkakao

import (
	"context"
	"net/http"

	"github.com/mapchelin/mapchelin/internal/app/store/oauthstate"
	"github.com/mapchelin/mapchelin/internal/app/store/users"
	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/kakao"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
	"github.com/mapchelin/mapchelin/internal/app/system/token"
	"github.com/mapchelin/mapchelin/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the dependencies of the Kakao login endpoints.
type Handler struct {
	Kakao  *kakao.Client
	States *oauthstate.Store
	Users  *userstore.Store
	Tokens *token.Issuer
	Log    *zap.Logger
}

// NewHandler constructs an authkakao Handler.
func NewHandler(kk *kakao.Client, states *oauthstate.Store, users *userstore.Store, tokens *token.Issuer, logger *zap.Logger) *Handler {
	return &Handler{
		Kakao:  kk,
		States: states,
		Users:  users,
		Tokens: tokens,
		Log:    logger,
	}
}

// ServeLogin handles GET /auth/kakao. It persists a single-use state and
// redirects the browser to Kakao's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.Kakao.IsConfigured() {
		httpjson.WriteError(w, http.StatusServiceUnavailable, "kakao login is not configured")
		return
	}

	state, err := kakao.GenerateState()
	if err != nil {
		httpjson.HandleError(w, h.Log, "authkakao: login", err)
		return
	}
	if err := h.States.Save(ctx, state); err != nil {
		httpjson.HandleError(w, h.Log, "authkakao: login", err)
		return
	}

	http.Redirect(w, r, h.Kakao.AuthCodeURL(state), http.StatusFound)
}

// ServeCallback handles GET /auth/kakao/callback. It validates the state,
// trades the code for a profile, then gets or creates the matching user and
// issues a token pair.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		httpjson.HandleError(w, h.Log, "authkakao: callback", apperr.BadRequest("state and code are required"))
		return
	}

	if err := h.States.Consume(ctx, state); err != nil {
		if err == oauthstate.ErrUnknownState {
			httpjson.HandleError(w, h.Log, "authkakao: callback", apperr.Unauthorized("invalid oauth state"))
			return
		}
		httpjson.HandleError(w, h.Log, "authkakao: callback", err)
		return
	}

	profile, err := h.Kakao.Exchange(ctx, code)
	if err != nil {
		h.Log.Warn("authkakao: code exchange failed", zap.Error(err))
		httpjson.HandleError(w, h.Log, "authkakao: callback", apperr.Unauthorized("kakao login failed"))
		return
	}

	u, err := h.lookupOrCreate(ctx, profile)
	if err != nil {
		httpjson.HandleError(w, h.Log, "authkakao: callback", err)
		return
	}

	pair, err := h.Tokens.IssuePair(u.ID, u.Nickname, u.Role)
	if err != nil {
		httpjson.HandleError(w, h.Log, "authkakao: callback", err)
		return
	}

	httpjson.Write(w, http.StatusOK, "logged in", map[string]any{
		"user":          u.Public(),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// lookupOrCreate resolves the Kakao identity to a local user, creating it
// on first login. A create failure is reported as internal so a retry can
// find the half-registered identity gone, not duplicated.
func (h *Handler) lookupOrCreate(ctx context.Context, p *kakao.Profile) (*models.User, error) {
	u, err := h.Users.GetByProvider(ctx, kakao.Provider, p.ID)
	if err == nil {
		return u, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	created, err := h.Users.CreateOAuth(ctx, userstore.OAuthUser{
		Provider:   kakao.Provider,
		ProviderID: p.ID,
		Nickname:   p.Nickname,
		Email:      p.Email,
		AvatarURL:  p.AvatarURL,
	})
	if err != nil {
		return nil, apperr.Internal("could not create account from kakao profile", err)
	}
	return &created, nil
}
