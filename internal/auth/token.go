package auth

import (
	"context"
	"sync"
	"time"

	"github.com/fivetwenty-io/namebright-client/internal/constants"
)

// TokenManager supplies bearer tokens to the HTTP layer.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// Token is a bearer token held in memory.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	ExpiresIn   int       `json:"expires_in,omitempty"`
	ExpiresAt   time.Time `json:"-"`
}

// Valid reports whether the token can still be used now, honouring the
// standard 60 second renewal margin.
func (t *Token) Valid() bool {
	return t.ValidAt(time.Now(), constants.TokenExpirySkew)
}

// ValidAt reports whether the token is usable at now, i.e. now is before
// ExpiresAt minus skew. A token without an expiry never expires.
func (t *Token) ValidAt(now time.Time, skew time.Duration) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return now.Before(t.ExpiresAt.Add(-skew))
}

// TokenStore holds the current token.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
