package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/token"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenUser is the identity extracted from a verified access token and
// injected into the request context.
type TokenUser struct {
	ID       primitive.ObjectID
	Nickname string
	Role     string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user and a "found?" flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

// Middleware verifies Bearer tokens and loads the user into context.
type Middleware struct {
	Tokens *token.Issuer
}

// NewMiddleware creates the auth middleware around a token issuer.
func NewMiddleware(tokens *token.Issuer) *Middleware {
	return &Middleware{Tokens: tokens}
}

// LoadUser injects the user into context when a valid Bearer token is
// present. Requests without a token pass through unauthenticated.
func (m *Middleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.Tokens.VerifyAccess(raw)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		id, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		u := &TokenUser{ID: id, Nickname: claims.Nickname, Role: claims.Role}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadUser),
// responding 401 otherwise.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithTestUser injects a user into the request context, bypassing token
// verification. For tests only.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
