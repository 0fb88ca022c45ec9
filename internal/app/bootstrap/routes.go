// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/mapchelin/mapchelin/internal/app/features/accounts"
	authkakaofeature "github.com/mapchelin/mapchelin/internal/app/features/authkakao"
	healthfeature "github.com/mapchelin/mapchelin/internal/app/features/health"
	storesfeature "github.com/mapchelin/mapchelin/internal/app/features/stores"
	"github.com/mapchelin/mapchelin/internal/app/store/comments"
	"github.com/mapchelin/mapchelin/internal/app/store/notifications"
	"github.com/mapchelin/mapchelin/internal/app/store/oauthstate"
	"github.com/mapchelin/mapchelin/internal/app/store/queries/accountpurge"
	"github.com/mapchelin/mapchelin/internal/app/store/stores"
	"github.com/mapchelin/mapchelin/internal/app/store/users"
	"github.com/mapchelin/mapchelin/internal/app/system/auth"
	"github.com/mapchelin/mapchelin/internal/app/system/kakao"
	"github.com/mapchelin/mapchelin/internal/app/system/limits"
	"github.com/mapchelin/mapchelin/internal/app/system/token"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It builds the token issuer, the store
// layer, and the feature routers, and applies the Bearer-token middleware
// globally so every handler can read auth.CurrentUser(r).
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := token.NewIssuer(token.Config{
		Secret:     appCfg.JWTSecret,
		Issuer:     "mapchelin",
		AccessTTL:  appCfg.AccessTokenTTL,
		RefreshTTL: appCfg.RefreshTokenTTL,
	})
	if err != nil {
		logger.Error("token issuer init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	users := userstore.New(db)
	stores := storestore.New(db)
	comments := commentstore.New(db)
	notifications := notificationstore.New(db)
	states := oauthstate.New(db)
	purger := accountpurge.New(deps.MongoClient, db, logger)

	kk := kakao.New(appCfg.KakaoClientID, appCfg.KakaoClientSecret,
		appCfg.BaseURL+"/auth/kakao/callback")

	authMW := auth.NewMiddleware(tokens)

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestSize(limits.MaxJSONBodySize))

	// Global auth middleware: loads the Bearer identity into context when
	// present. RequireSignedIn guards the routes that need one.
	r.Use(authMW.LoadUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	accountsHandler := accountsfeature.NewHandler(users, tokens, purger, logger)
	r.Mount("/accounts", accountsfeature.Routes(accountsHandler))

	kakaoHandler := authkakaofeature.NewHandler(kk, states, users, tokens, logger)
	r.Mount("/auth/kakao", authkakaofeature.Routes(kakaoHandler))

	storesHandler := storesfeature.NewHandler(deps.MongoClient, stores, comments, notifications, logger)
	r.Mount("/stores", storesfeature.Routes(storesHandler))

	return r, nil
}
