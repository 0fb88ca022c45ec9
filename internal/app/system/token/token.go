// Package token issues and verifies the access/refresh JWT pair used by the
// account endpoints. Tokens are HS256-signed and stateless: verification
// reads nothing but the signature and claims.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default lifetimes, overridable through config.
const (
	DefaultAccessTTL  = 2 * time.Hour
	DefaultRefreshTTL = 14 * 24 * time.Hour
)

// ErrInvalidToken is returned for any token that fails to parse or verify.
var ErrInvalidToken = errors.New("invalid or expired token")

// Token type discriminator carried in the typ claim. Without it the two
// tokens of a pair would be interchangeable: a long-lived refresh token
// could authenticate requests, and an access token could mint fresh pairs.
const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// Claims are the identity claims carried by an access token.
type Claims struct {
	TokenType string `json:"typ,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// refreshClaims carry only the subject id plus the typ discriminator.
type refreshClaims struct {
	TokenType string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

// Pair is an issued access/refresh token pair.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Issuer signs and verifies token pairs.
type Issuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// Config configures an Issuer. Zero TTLs fall back to the defaults.
type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewIssuer builds an Issuer. The secret must be non-empty.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token: signing secret is empty")
	}
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Issuer{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssuePair mints an access token carrying {id, nickname, role} and a
// refresh token carrying only the id plus a unique jti.
func (i *Issuer) IssuePair(userID primitive.ObjectID, nickname, role string) (Pair, error) {
	now := time.Now()

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TokenType: typeAccess,
		Nickname:  nickname,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}).SignedString(i.secret)
	if err != nil {
		return Pair{}, err
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims{
		TokenType: typeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			Issuer:    i.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.refreshTTL)),
		},
	}).SignedString(i.secret)
	if err != nil {
		return Pair{}, err
	}

	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess parses and verifies an access token, returning its claims.
// Refresh tokens are rejected regardless of signature validity.
func (i *Issuer) VerifyAccess(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid || claims.TokenType != typeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh parses a refresh token and returns the user id it carries.
// Access tokens are rejected regardless of signature validity.
func (i *Issuer) VerifyRefresh(tokenString string) (primitive.ObjectID, error) {
	claims := &refreshClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid || claims.TokenType != typeRefresh {
		return primitive.NilObjectID, ErrInvalidToken
	}
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return id, nil
}
