// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devJWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for the service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: MAPCHELIN_MONGO_URI, MAPCHELIN_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "mapchelin", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Tokens
	{Name: "jwt_secret", Default: devJWTSecret, Desc: "JWT signing key (must be strong in production)"},
	{Name: "access_token_ttl", Default: "2h", Desc: "Access token lifetime (e.g., 2h, 30m)"},
	{Name: "refresh_token_ttl", Default: "336h", Desc: "Refresh token lifetime (e.g., 336h for 14 days)"},

	// Kakao OAuth
	{Name: "kakao_client_id", Default: "", Desc: "Kakao OAuth2 client ID (REST API key)"},
	{Name: "kakao_client_secret", Default: "", Desc: "Kakao OAuth2 client secret"},

	// Base URL for the OAuth callback
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Public base URL of this service"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, MAPCHELIN_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MAPCHELIN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret:       appValues.String("jwt_secret"),
		AccessTokenTTL:  appValues.Duration("access_token_ttl", 2*time.Hour),
		RefreshTokenTTL: appValues.Duration("refresh_token_ttl", 14*24*time.Hour),

		KakaoClientID:     appValues.String("kakao_client_id"),
		KakaoClientSecret: appValues.String("kakao_client_secret"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI format is checked here to catch configuration errors
// before attempting to connect, and the dev JWT secret is rejected
// outside dev mode.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env != "dev" && appCfg.JWTSecret == devJWTSecret {
		return fmt.Errorf("jwt_secret must be set to a strong value outside dev mode")
	}

	if appCfg.AccessTokenTTL <= 0 || appCfg.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}

	if (appCfg.KakaoClientID == "") != (appCfg.KakaoClientSecret == "") {
		return fmt.Errorf("kakao_client_id and kakao_client_secret must be set together")
	}

	return nil
}
