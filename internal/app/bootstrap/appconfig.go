// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings like HTTP ports, TLS, logging, and CORS;
// AppConfig is everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token configuration
	JWTSecret       string        // HMAC signing key (must be strong in production)
	AccessTokenTTL  time.Duration // Access token lifetime
	RefreshTokenTTL time.Duration // Refresh token lifetime

	// Kakao OAuth configuration (login is disabled when blank)
	KakaoClientID     string
	KakaoClientSecret string

	// Base URL for building the OAuth callback (e.g., "https://api.mapchelin.com")
	BaseURL string
}
