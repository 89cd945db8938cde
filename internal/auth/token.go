// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
)

// fernetWindow disables fernet's own age check; expiry is read from Claims.
const fernetWindow = 100 * 365 * 24 * time.Hour

// Claims is the payload sealed inside a session token.
type Claims struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TokenManager seals and opens fernet session tokens.
type TokenManager struct {
	key *fernet.Key
	ttl time.Duration
	now func() time.Time
}

// NewTokenManager creates a TokenManager from a base64 fernet key.
// An empty key generates a fresh one, which invalidates tokens on restart.
func NewTokenManager(encodedKey string, ttl time.Duration) (*TokenManager, error) {
	var key *fernet.Key
	if encodedKey == "" {
		key = new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate token key: %w", err)
		}
	} else {
		k, err := fernet.DecodeKey(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("invalid token key: %w", err)
		}
		key = k
	}
	return &TokenManager{key: key, ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the clock used for issue and expiry checks.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// TTL returns the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue returns a token for the given user.
func (m *TokenManager) Issue(userID, email string) (string, error) {
	now := m.now()
	claims := Claims{
		Subject:   userID,
		Email:     email,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(m.ttl).Unix(),
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %w", err)
	}
	tok, err := fernet.EncryptAndSign(payload, m.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(tok), nil
}

// Verify opens token and returns its claims.
// Returns apperrors.ErrInvalidToken or apperrors.ErrTokenExpired.
func (m *TokenManager) Verify(token string) (Claims, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), fernetWindow, []*fernet.Key{m.key})
	if payload == nil {
		return Claims{}, apperrors.ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Subject == "" {
		return Claims{}, apperrors.ErrInvalidToken
	}
	if m.now().Unix() >= claims.ExpiresAt {
		return Claims{}, apperrors.ErrTokenExpired
	}
	return claims, nil
}
