package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/swiftpay/swiftpay/internal/identity"
)

// ErrInvalidToken covers missing, malformed, tampered and expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// Principal is the authenticated identity resolved from a verified token.
type Principal struct {
	UserID string
	Role   identity.Role
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer,
// audience and token lifetime.
func NewTokenManager(secret, issuer, audience string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), issuer: issuer, audience: audience, ttl: ttl}
}

// Issue signs a token carrying the user's id and role claim.
func (t *TokenManager) Issue(user identity.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)
	claims := jwt.MapClaims{
		"iss":  t.issuer,
		"aud":  t.audience,
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify validates signature, lifetime, issuer and audience, then extracts
// the principal. Any failure collapses into ErrInvalidToken.
func (t *TokenManager) Verify(tokenStr string) (Principal, error) {
	token, err := jwt.Parse(tokenStr,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	roleClaim, _ := claims["role"].(string)
	if sub == "" {
		return Principal{}, ErrInvalidToken
	}
	role, err := identity.ParseRole(roleClaim)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: sub, Role: role}, nil
}
