package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the browser cookie carrying the signed session ID.
const CookieName = "vitrine_sid"

// NewSID generates a fresh session ID.
func NewSID() string {
	return uuid.NewString()
}

// SignSID wraps a session ID in a signed JWT for the cookie value.
func (m *Manager) SignSID(sid string) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("session secret not configured")
	}
	claims := jwt.MapClaims{
		"sub": sid,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseSID verifies a cookie value and extracts the session ID. Any
// tampered or expired cookie yields an error; callers issue a fresh
// session instead of failing the request.
func (m *Manager) ParseSID(value string) (string, error) {
	parsed, err := jwt.Parse(value, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid session cookie")
	}
	sid, ok := claims["sub"].(string)
	if !ok || sid == "" {
		return "", fmt.Errorf("missing session id")
	}
	return sid, nil
}

// TTL exposes the configured session lifetime for cookie expiry.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
