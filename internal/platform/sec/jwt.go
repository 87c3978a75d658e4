// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [auth.TokenProvider] interface.
package sec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// # Why custom claims?
//
// By embedding the UserID, Username, Email, and Role directly inside the JWT,
// the authentication middleware can reconstruct the active user context
// WITHOUT querying the database on every single API request. This provides
// massive read-scalability.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   int64  `json:"uid"`
	Username string `json:"unm"`
	Email    string `json:"eml"`
	Role     string `json:"rol"`
}

// TokenConfig holds the signing parameters for [TokenService].
//
// It is constructed once at process start from the loaded configuration and
// passed by reference into constructors. Nothing in the hot path reads
// ambient global state.
type TokenConfig struct {
	// Secret is the symmetric HMAC-SHA256 signing key. It must carry at
	// least 256 bits of entropy in a real deployment.
	Secret string

	// Issuer is the 'iss' claim stamped on every token and required on
	// verification.
	Issuer string

	// Audience is the 'aud' claim stamped on every token and required on
	// verification.
	Audience string

	// ExpiryWindow is the fixed lifetime of every issued token.
	ExpiryWindow time.Duration
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	window   time.Duration
}

// NewTokenService creates a new TokenService from an explicit configuration.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}
	if cfg.ExpiryWindow <= 0 {
		return nil, fmt.Errorf("sec: token expiry window must be positive")
	}

	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		window:   cfg.ExpiryWindow,
	}, nil
}

// ExpiresIn returns the configured token lifetime.
func (service *TokenService) ExpiresIn() time.Duration {
	return service.window
}

// GenerateAccessToken creates a new signed JWT access token for a user.
//
// The expiry is exactly issuance time + the configured window. Each call
// produces a fresh token because wall-clock time is embedded in the claims.
func (service *TokenService) GenerateAccessToken(userID int64, username, email, role string) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{service.audience},
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.window)),
		},
		UserID:   userID,
		Username: username,
		Email:    email,
		Role:     role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
//
// A token is rejected when the signature does not verify against the
// configured secret, the algorithm is not HMAC, the expiry has passed
// (zero clock-skew tolerance), or the issuer/audience claims do not match
// the configured values.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&AuthClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithAudience(service.audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
