package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/contactvault/contactvault/internal/apperr"
)

// Tokens issues and verifies the signed identity tokens carried in the
// session cookie. Tokens embed a user id and expire after the configured TTL.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens builds a token issuer/verifier around a process-wide secret.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the user id expiring ttl from now.
func (t *Tokens) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	})
	return token.SignedString(t.secret)
}

// Verify returns the embedded user id iff the signature is valid and the
// token is unexpired. Every failure mode, expired, malformed or tampered,
// collapses into the same auth error so callers treat them uniformly.
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", apperr.Auth("Invalid token")
	}
	return claims.Subject, nil
}
