// Package auth issues and validates session handles.
//
// A handle is an HS256-signed JWT naming one planner session. Clients get one
// from AcceptProfile and send it back as a bearer token on later calls.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidHandle = errors.New("invalid or expired session handle")
	ErrMissingHandle = errors.New("session handle required")
)

// HandleManager handles session handle generation and validation.
type HandleManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// Claims represents the custom JWT claims carried by a session handle.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// NewHandleManager creates a new handle manager with the given secret and
// handle lifetime. secretKey should be a strong random string (e.g., 32 bytes).
func NewHandleManager(secretKey string, ttl time.Duration) *HandleManager {
	return &HandleManager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Issue creates a new handle for the given session.
func (m *HandleManager) Issue(sessionID string) (string, error) {
	now := m.now()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	handle, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign handle: %w", err)
	}

	return handle, nil
}

// Validate parses and validates a handle, returning the session ID it names.
func (m *HandleManager) Validate(handle string) (string, error) {
	if handle == "" {
		return "", ErrMissingHandle
	}

	token, err := jwt.ParseWithClaims(
		handle,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return m.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHandle, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidHandle
	}

	return claims.SessionID, nil
}
