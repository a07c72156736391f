// Package auth is the identity gate: it mints and verifies bearer tokens and
// resolves the authenticated principal for a request. Everything downstream
// trusts the Context it produces.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Context identifies the authenticated principal of a request. Services take
// it as an explicit argument; it is never inferred from payload data.
type Context struct {
	UserID string
}

// Claims is the JWT payload carried by a session token.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Manager issues and verifies session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// DefaultTokenTTL matches the original application's 30-day sessions.
const DefaultTokenTTL = 30 * 24 * time.Hour

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the given user id.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the principal it identifies.
func (m *Manager) Verify(token string) (Context, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Context{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return Context{}, fmt.Errorf("invalid token")
	}

	return Context{UserID: claims.UserID}, nil
}
