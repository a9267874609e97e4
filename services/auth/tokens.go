// Package auth issues and verifies session tokens. Handlers depend on the
// Issuer interface only; nothing outside this package knows the tokens are
// JWTs.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers expired, malformed and wrongly signed tokens alike.
var ErrInvalidToken = errors.New("invalid token")

// Issuer mints session tokens for a user ID and resolves them back.
type Issuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// JWTIssuer signs HS256 tokens with a shared secret.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

// DefaultTTL matches the original session lifetime of one day.
const DefaultTTL = 24 * time.Hour

func NewJWTIssuer(secret []byte, ttl time.Duration) *JWTIssuer {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &JWTIssuer{secret: secret, ttl: ttl}
}

var _ Issuer = (*JWTIssuer)(nil)

// Issue mints a token whose subject is the user ID.
func (i *JWTIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify resolves a token back to its user ID.
func (i *JWTIssuer) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
